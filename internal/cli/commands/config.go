package commands

import (
	"github.com/spf13/cobra"
)

func newConfigCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Generate the nfpm config file without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.generateConfig(); err != nil {
				return err
			}
			return app.host.SetOutput("config-file", app.inputs.ConfigFile)
		},
	}
}
