package main

import (
	"io"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/spf13/cobra"
)

func newSearchCommand(c *cli) *cobra.Command {
	var (
		filters map[string]string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties, cheapest first",
		Example: `  lightbnb search --filter city=Vancouver --filter minimum_rating=4
  lightbnb search -f minimum_price_per_night=50 -f maximum_price_per_night=150 --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := model.ParseFilterOptions(filters)
			if err != nil {
				return errs.NewBadRequestError(err.Error(), true, nil, nil)
			}

			listings, err := c.app.Services.Properties.Search(c.ctx, opts, limit)
			if err != nil {
				return err
			}

			return c.print(listings, func(w io.Writer) { writeListings(w, listings) })
		},
	}

	cmd.Flags().StringToStringVarP(&filters, "filter", "f", nil,
		"filter as key=value; keys: city, owner_id, minimum_price_per_night, maximum_price_per_night, minimum_rating")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of results (default from config)")

	return cmd
}
