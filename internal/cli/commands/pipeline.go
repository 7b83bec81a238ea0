package commands

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/webitel/nfpm-build/internal/action"
	"github.com/webitel/nfpm-build/internal/cli/builder"
	"github.com/webitel/nfpm-build/internal/cli/installer"
	"github.com/webitel/nfpm-build/internal/cli/shared"
	"github.com/webitel/nfpm-build/internal/logging"
	"github.com/webitel/nfpm-build/pkg/contents"
	"github.com/webitel/nfpm-build/pkg/nfpmconfig"
)

func reporter(component string) logging.Reporter {
	return logging.Reporter{Logger: logging.GetLogger(component)}
}

func (app *appContext) parseContents() ([]contents.Descriptor, error) {
	policy, err := contents.ParseModePolicy(app.inputs.ModePolicy)
	if err != nil {
		return nil, newExitCodeError(shared.ExitConfigError, err)
	}
	files, err := contents.NewParser(policy, reporter("contents")).Parse(app.inputs.Contents)
	if err != nil {
		return nil, newExitCodeError(shared.ExitContentError, err)
	}
	return files, nil
}

// generateConfig parses contents, checks the sources and writes the nfpm
// config file.
func (app *appContext) generateConfig() error {
	app.host.StartGroup("Generating NFPM configuration")
	defer app.host.EndGroup()

	files, err := app.parseContents()
	if err != nil {
		return err
	}
	if err := contents.ValidateSources(files, os.Stat, reporter("contents")); err != nil {
		return newExitCodeError(shared.ExitContentError, err)
	}

	cfg, err := nfpmconfig.Build(app.inputs.Package(), files, reporter("config"))
	if err != nil {
		return newExitCodeError(shared.ExitConfigError, err)
	}
	backupPath, err := shared.BackupFile(app.inputs.ConfigFile, app.backup, time.Now())
	if err != nil {
		return newExitCodeError(shared.ExitConfigError, err)
	}
	if backupPath != "" {
		logger := logging.GetLogger("config")
		logger.Info().Str("backup", backupPath).Msg("Backed up existing config file")
	}
	if err := nfpmconfig.Write(app.inputs.ConfigFile, cfg, reporter("config")); err != nil {
		return newExitCodeError(shared.ExitConfigError, err)
	}
	return nil
}

func (app *appContext) installNFPM(ctx context.Context) error {
	app.host.StartGroup("Installing NFPM")
	defer app.host.EndGroup()

	in := app.inputs
	_, err := installer.Install(ctx, installer.Options{
		Version:     in.NFPMVersion,
		SkipInstall: in.Skip(),
		Checksum:    in.NFPMChecksum,
		DownloadURL: in.NFPMDownloadURL,
		Token:       githubToken(in),
		Runner:      app.toolRunner(),
		AddPath:     app.host.AddPath,
	})
	if err != nil {
		return newExitCodeError(shared.ExitInstallError, err)
	}
	return nil
}

func (app *appContext) buildPackages(ctx context.Context) ([]builder.Package, error) {
	app.host.StartGroup("Building packages")
	defer app.host.EndGroup()

	formats, err := builder.ParseFormats(app.inputs.Formats)
	if err != nil {
		return nil, newExitCodeError(shared.ExitConfigError, err)
	}
	packages, err := builder.New(app.toolRunner(), app.stdout).Build(ctx, builder.Options{
		ConfigFile: app.inputs.ConfigFile,
		Target:     app.inputs.Target,
		Formats:    formats,
	})
	if err != nil {
		return nil, newExitCodeError(shared.ExitBuildError, err)
	}
	return packages, nil
}

func githubToken(in *action.Inputs) string {
	if in.GitHubToken != "" {
		return in.GitHubToken
	}
	return os.Getenv("GITHUB_TOKEN")
}

func setOutputs(host *action.Host, configFile string, packages []builder.Package) error {
	return errors.Join(
		host.SetOutput("packages", joinPaths(packages)),
		host.SetOutput("config-file", configFile),
	)
}
