package commands

import (
	"github.com/spf13/cobra"
)

func newInstallCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install nfpm into the tool cache and add it to PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.installNFPM(cmd.Context())
		},
	}
}
