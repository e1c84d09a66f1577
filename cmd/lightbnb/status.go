package main

import (
	"errors"

	"github.com/deppfellow/lightbnb/internal/lib/utils"
	"github.com/spf13/cobra"
)

func newStatusCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check database and redis connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := c.app.Health.Run(c.ctx)

			if err := utils.PrintJSON(c.out, report); err != nil {
				return err
			}

			if !report.Healthy() {
				return errors.New("one or more health checks failed")
			}
			return nil
		},
	}
}
