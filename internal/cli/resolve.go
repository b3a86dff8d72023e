package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sourceloc/pkg/catalog"
	"github.com/matzehuels/sourceloc/pkg/errors"
	"github.com/matzehuels/sourceloc/pkg/observability"
	"github.com/matzehuels/sourceloc/pkg/scm"
	"github.com/matzehuels/sourceloc/pkg/source"
)

// resolveOpts holds the resolve command flags.
type resolveOpts struct {
	json            bool
	edit            bool
	managedFallback bool
}

// resolveRecord is one line of resolve output.
type resolveRecord struct {
	File    string        `json:"file"`
	Entity  string        `json:"entity"`
	URL     string        `json:"url,omitempty"`
	Type    string        `json:"type,omitempty"`
	EditURL string        `json:"editUrl,omitempty"`
	Reason  source.Reason `json:"reason"`
	Error   string        `json:"error,omitempty"`
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve FILE...",
		Short: "Resolve the source location of catalog entities",
		Long: `Resolve reads catalog entity files (multi-document YAML or JSON) and prints,
for every entity, the target of its backstage.io/source-location annotation and
the type of the SCM integration owning that URL.

Entities without a usable annotation are reported, not treated as errors.`,
		Example: `  sourceloc resolve catalog-info.yaml
  sourceloc resolve --config app-config.yaml --edit services/*.yaml
  sourceloc resolve --json catalog-info.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&opts.edit, "edit", false, "include the edit URL of each resolved location")
	cmd.Flags().BoolVar(&opts.managedFallback, "managed-by-fallback", false, "use backstage.io/managed-by-location when no source location is set")

	return cmd
}

func (c *CLI) runResolve(_ context.Context, w io.Writer, files []string, opts resolveOpts) error {
	prog := newProgress(c.Logger)

	reg, err := c.loadRegistry()
	if err != nil {
		return err
	}

	stats := newResolveStats()
	resolverOpts := []source.Option{
		source.WithHooks(observability.MultiResolveHooks{
			observability.Resolve(),
			logHooks{logger: c.Logger},
			stats,
		}),
	}
	if opts.managedFallback {
		resolverOpts = append(resolverOpts, source.WithManagedByFallback())
	}
	r := source.NewResolver(reg, resolverOpts...)

	var records []resolveRecord
	for _, file := range files {
		entities, err := catalog.LoadFile(file)
		if err != nil {
			return err
		}
		for i := range entities {
			records = append(records, resolveEntity(r, reg, file, &entities[i], opts.edit))
		}
	}

	if opts.json {
		if err := writeJSON(w, records); err != nil {
			return err
		}
	} else {
		printRecords(w, records)
	}

	resolved := stats.reasons[string(source.ReasonResolved)] + stats.reasons[string(source.ReasonNoIntegration)]
	prog.done(fmt.Sprintf("Resolved %d of %d entities", resolved, stats.total))
	return nil
}

func resolveEntity(r *source.Resolver, reg *scm.Integrations, file string, e *catalog.Entity, edit bool) resolveRecord {
	res := r.ResolveDetailed(e)
	rec := resolveRecord{
		File:   file,
		Entity: e.Ref(),
		URL:    res.Location.URL,
		Type:   res.Location.Type,
		Reason: res.Reason,
	}
	if res.Err != nil {
		rec.Error = errors.UserMessage(res.Err)
	}
	if edit && res.OK() {
		rec.EditURL = reg.ResolveEditURL(res.Location.URL)
	}
	return rec
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printRecords(w io.Writer, records []resolveRecord) {
	if len(records) == 0 {
		printInfo(w, "No entities found")
		return
	}
	for _, rec := range records {
		switch {
		case rec.Reason == source.ReasonResolved:
			printSuccess(w, "%s %s", StyleHighlight.Render(rec.Entity), StyleDim.Render(rec.Type))
		case rec.Reason == source.ReasonNoIntegration:
			printSuccess(w, "%s %s", StyleHighlight.Render(rec.Entity), StyleDim.Render("no matching integration"))
		case rec.Error != "":
			printError(w, "%s %s", StyleHighlight.Render(rec.Entity), rec.Error)
			continue
		default:
			printWarning(w, "%s has no source location", rec.Entity)
			continue
		}
		printLink(w, rec.URL)
		if rec.EditURL != "" && rec.EditURL != rec.URL {
			printDetail(w, "edit: %s", rec.EditURL)
		}
	}
}
