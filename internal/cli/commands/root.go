package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/webitel/nfpm-build/internal/action"
	"github.com/webitel/nfpm-build/internal/cli/shared"
	"github.com/webitel/nfpm-build/internal/cli/toolrun"
	"github.com/webitel/nfpm-build/internal/logging"
)

type appContext struct {
	verbosity    int
	contentsFile string
	skipInstall  bool
	backup       string
	overrides    flagOverrides

	inputs *action.Inputs
	host   *action.Host
	runner toolrun.Runner
	stdout io.Writer
}

// flagOverrides hold flag values that replace the matching INPUT_* variable
// when the flag is set.
type flagOverrides struct {
	configFile  string
	target      string
	formats     string
	contents    string
	nfpmVersion string
	modePolicy  string
}

func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&appContext{host: action.NewHost()}, version)
}

func newRootCmd(app *appContext, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nfpm-build",
		Short: "Generate an nfpm config from action inputs and build Linux packages",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.CountVarP(&app.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&app.overrides.configFile, "config-file", "", "path of the generated nfpm config (default .nfpm.yaml)")
	flags.StringVar(&app.overrides.target, "target", "", "directory for built packages (default dist)")
	flags.StringVar(&app.overrides.formats, "formats", "", "comma separated packagers: deb,rpm,apk,archlinux")
	flags.StringVar(&app.overrides.contents, "contents", "", "content file definitions (YAML or key-value lines)")
	flags.StringVar(&app.contentsFile, "contents-file", "", "read content file definitions from a file")
	flags.StringVar(&app.overrides.nfpmVersion, "nfpm-version", "", "nfpm release to install, or latest")
	flags.BoolVar(&app.skipInstall, "skip-install", false, "use the nfpm already on PATH")
	flags.StringVar(&app.overrides.modePolicy, "mode-policy", "", "mode handling: octal|literal")
	flags.StringVar(&app.backup, "backup", shared.BackupNone, "backup strategy for an existing config file: none|timestamp")

	cmd.AddCommand(newBuildCmd(app))
	cmd.AddCommand(newContentsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newInstallCmd(app))
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

func Execute(version string) int {
	app := &appContext{host: action.NewHost()}
	if err := newRootCmd(app, version).Execute(); err != nil {
		if app.host.InActions() {
			app.host.Fail(err)
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return mapExitCode(err)
	}
	return shared.ExitOK
}

// prepare configures logging and resolves inputs for every subcommand.
func (app *appContext) prepare(cmd *cobra.Command) error {
	if app.host == nil {
		app.host = action.NewHost()
	}
	if app.stdout == nil {
		app.stdout = cmd.OutOrStdout()
	}
	logOut := cmd.ErrOrStderr()
	if app.host.InActions() {
		logOut = app.host.Out
	}
	logging.SetupLogger(app.verbosity, logOut, app.host.InActions())

	if err := shared.ValidateBackupStrategy(app.backup); err != nil {
		return newExitCodeError(shared.ExitConfigError, err)
	}
	in, err := action.LoadInputs()
	if err != nil {
		return newExitCodeError(shared.ExitConfigError, err)
	}
	if err := app.applyOverrides(cmd, in); err != nil {
		return newExitCodeError(shared.ExitConfigError, err)
	}
	app.inputs = in
	return nil
}

func (app *appContext) applyOverrides(cmd *cobra.Command, in *action.Inputs) error {
	changed := cmd.Flags().Changed
	for _, o := range []struct {
		flag  string
		value string
		field *string
	}{
		{"config-file", app.overrides.configFile, &in.ConfigFile},
		{"target", app.overrides.target, &in.Target},
		{"formats", app.overrides.formats, &in.Formats},
		{"contents", app.overrides.contents, &in.Contents},
		{"nfpm-version", app.overrides.nfpmVersion, &in.NFPMVersion},
		{"mode-policy", app.overrides.modePolicy, &in.ModePolicy},
	} {
		if changed(o.flag) {
			*o.field = o.value
		}
	}
	if changed("skip-install") {
		in.SkipInstall = fmt.Sprint(app.skipInstall)
	}

	if app.contentsFile != "" {
		if changed("contents") {
			return errors.New("--contents and --contents-file are mutually exclusive")
		}
		b, err := os.ReadFile(app.contentsFile)
		if err != nil {
			return fmt.Errorf("read contents file: %w", err)
		}
		in.Contents = string(b)
	}
	action.NormalizeInputs(in)
	return nil
}

func (app *appContext) toolRunner() toolrun.Runner {
	if app.runner != nil {
		return app.runner
	}
	return toolrun.NewExec()
}

func mapExitCode(err error) int {
	var codeErr *exitCodeError
	if errors.As(err, &codeErr) {
		return codeErr.code
	}
	return shared.ExitFailed
}

type exitCodeError struct {
	code int
	err  error
}

func newExitCodeError(code int, err error) *exitCodeError {
	return &exitCodeError{code: code, err: err}
}

func (e *exitCodeError) Error() string {
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}
