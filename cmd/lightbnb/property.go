package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/spf13/cobra"
)

func newPropertyCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Manage properties",
	}

	cmd.AddCommand(newPropertyAddCommand(c))
	return cmd
}

func newPropertyAddCommand(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a property from a JSON document",
		Example: `  lightbnb property add -f listing.json
  cat listing.json | lightbnb property add -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := readNewProperty(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			property, err := c.app.Services.Properties.Create(c.ctx, input)
			if err != nil {
				return err
			}

			return c.print(property, func(w io.Writer) { writeProperty(w, property) })
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `JSON file with the property, "-" for stdin`)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readNewProperty decodes a NewProperty from path, or from stdin when path is "-".
func readNewProperty(stdin io.Reader, path string) (model.NewProperty, error) {
	var input model.NewProperty

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return input, err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return input, fmt.Errorf("invalid property document: %w", err)
	}

	return input, nil
}
