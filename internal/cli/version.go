package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sourceloc/pkg/buildinfo"
)

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd.OutOrStdout(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}

func runVersion(w io.Writer, asJSON bool) error {
	info := buildinfo.Get()
	if asJSON {
		return writeJSON(w, info)
	}
	printKeyValue(w, "version", info.Version)
	printKeyValue(w, "commit", info.Commit)
	printKeyValue(w, "built", info.Date)
	printKeyValue(w, "go", info.GoVersion)
	printKeyValue(w, "platform", info.Platform)
	return nil
}
