package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/webitel/nfpm-build/internal/cli/builder"
	"github.com/webitel/nfpm-build/internal/logging"
)

func newBuildCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate the nfpm config, install nfpm and build packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.generateConfig(); err != nil {
				return err
			}
			if err := app.installNFPM(cmd.Context()); err != nil {
				return err
			}
			packages, err := app.buildPackages(cmd.Context())
			if err != nil {
				return err
			}
			if err := setOutputs(app.host, app.inputs.ConfigFile, packages); err != nil {
				return err
			}

			logger := logging.GetLogger("build")
			logger.Info().Msgf("Successfully built %d package(s): %s", len(packages), joinPaths(packages))
			return nil
		},
	}
}

func joinPaths(packages []builder.Package) string {
	return strings.Join(builder.Paths(packages), ",")
}
