package commands

import (
	"fmt"

	"github.com/ncobase/longrun/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Args:  cobra.NoArgs,
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetVersionInfo()
			if asJSON {
				return printJSON(cmd, info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
