package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/headless/internal/primitive"
)

type showOptions struct {
	catalogPath string
}

func newShowCmd(app *appContext) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <type>",
		Short: "Show a primitive type's descriptor and live accessibility props",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Also search a YAML catalog file")

	return cmd
}

func runShow(cmd *cobra.Command, app *appContext, opts *showOptions, typeName string) error {
	descriptors, err := collectDescriptors(app.registry, opts.catalogPath)
	if err != nil {
		return newCommandError("show", "loading catalog", err, "Check the catalog file path and contents.")
	}

	var descriptor *primitive.Descriptor
	for i := range descriptors {
		if descriptors[i].Type == typeName {
			descriptor = &descriptors[i]
			break
		}
	}
	if descriptor == nil {
		return newCommandError("show", "resolving type", fmt.Errorf("unknown primitive type %q", typeName),
			"Run 'headless list' to see the available types.")
	}

	out := cmd.OutOrStdout()
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Type:\t%s\n", descriptor.Type)
	fmt.Fprintf(writer, "Role:\t%s\n", descriptor.Role)
	if descriptor.Description != "" {
		fmt.Fprintf(writer, "Description:\t%s\n", descriptor.Description)
	}
	fmt.Fprintf(writer, "Events:\t%s\n", joinNames(descriptor.Events))
	fmt.Fprintf(writer, "Elements:\t%s\n", joinNames(descriptor.Elements))
	if err := writer.Flush(); err != nil {
		return err
	}

	// Catalog-only types have no compiled-in implementation to instantiate.
	factory, err := app.registry.Get(typeName)
	if err != nil {
		return nil
	}

	mounted, err := factory.New()
	if err != nil {
		return newCommandError("show", "instantiating primitive", err, "")
	}
	defer mounted.Close()

	fmt.Fprintf(out, "\nAccessibility (initial state, instance %s):\n", mounted.ID())
	props := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, element := range descriptor.Elements {
		record := mounted.A11yProps(element)
		fmt.Fprintf(props, "  %s\t", element)
		for _, k := range record.Keys() {
			fmt.Fprintf(props, "%s=%v ", k, record[k])
		}
		fmt.Fprintln(props)
	}
	return props.Flush()
}
