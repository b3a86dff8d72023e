package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// integrationsCommand creates the integrations command.
func (c *CLI) integrationsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "integrations",
		Short: "List the configured SCM integrations",
		Long: `List the SCM integrations built from the config, in lookup order.

Default entries for github.com, gitlab.com, bitbucket.org and dev.azure.com are
always present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runIntegrations(cmd.OutOrStdout(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print integrations as JSON")

	return cmd
}

type integrationRecord struct {
	Type  string `json:"type"`
	Host  string `json:"host"`
	Title string `json:"title"`
}

func (c *CLI) runIntegrations(w io.Writer, asJSON bool) error {
	reg, err := c.loadRegistry()
	if err != nil {
		return err
	}

	list := reg.List()
	records := make([]integrationRecord, 0, len(list))
	rows := make([][]string, 0, len(list))
	for _, in := range list {
		records = append(records, integrationRecord{Type: in.Type(), Host: in.Host(), Title: in.Title()})
		rows = append(rows, []string{in.Type(), in.Host(), in.Title()})
	}

	if asJSON {
		return writeJSON(w, records)
	}
	fmt.Fprintln(w, StyleTitle.Render("Integrations"))
	fmt.Fprintln(w, renderTable([]string{"TYPE", "HOST", "TITLE"}, rows))
	printKeyValue(w, "total", fmt.Sprint(len(list)))
	return nil
}
