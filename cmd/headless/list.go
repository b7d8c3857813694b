package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/headless/internal/catalog"
	"github.com/alexisbeaulieu97/headless/internal/primitive"
)

type listOptions struct {
	jsonOutput  bool
	catalogPath string
}

func newListCmd(app *appContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available primitive types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Merge descriptors from a YAML catalog file")

	return cmd
}

func runList(cmd *cobra.Command, app *appContext, opts *listOptions) error {
	descriptors, err := collectDescriptors(app.registry, opts.catalogPath)
	if err != nil {
		return newCommandError("list", "loading catalog", err, "Check the catalog file path and contents.")
	}

	if opts.jsonOutput {
		return renderListJSON(cmd, descriptors)
	}
	return renderListTable(cmd, descriptors)
}

// collectDescriptors merges built-in types with an optional catalog file.
// Built-ins win on type-name collisions.
func collectDescriptors(registry *primitive.Registry, catalogPath string) ([]primitive.Descriptor, error) {
	descriptors := registry.List()

	if catalogPath != "" {
		c, err := catalog.Load(catalogPath)
		if err != nil {
			return nil, err
		}
		known := make(map[string]struct{}, len(descriptors))
		for _, d := range descriptors {
			known[d.Type] = struct{}{}
		}
		for _, d := range c.Descriptors() {
			if _, exists := known[d.Type]; exists {
				continue
			}
			descriptors = append(descriptors, d)
		}
		sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Type < descriptors[j].Type })
	}

	return descriptors, nil
}

func renderListTable(cmd *cobra.Command, descriptors []primitive.Descriptor) error {
	if len(descriptors) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No primitive types available.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "TYPE\tROLE\tEVENTS\tELEMENTS")
	for _, d := range descriptors {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			d.Type,
			d.Role,
			joinNames(d.Events),
			joinNames(d.Elements),
		)
	}
	return writer.Flush()
}

type listJSONPayload struct {
	Count      int                    `json:"count"`
	Primitives []primitive.Descriptor `json:"primitives"`
}

func renderListJSON(cmd *cobra.Command, descriptors []primitive.Descriptor) error {
	payload := listJSONPayload{Count: len(descriptors), Primitives: descriptors}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func joinNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = string(name)
	}
	return strings.Join(parts, ",")
}
