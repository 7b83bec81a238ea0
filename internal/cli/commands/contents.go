package commands

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/webitel/nfpm-build/pkg/contents"
)

func newContentsCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "contents",
		Short: "Parse content definitions and print them as nfpm contents YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := app.parseContents()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(app.stdout)
			enc.SetIndent(2)
			err = enc.Encode(struct {
				Contents []contents.Descriptor `yaml:"contents"`
			}{files})
			if err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
