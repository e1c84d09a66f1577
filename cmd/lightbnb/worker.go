package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newWorkerCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:         "worker",
		Short:       "Run the background email worker until interrupted",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipTransaction: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.app.Job == nil {
				return errors.New("the worker needs LIGHTBNB_REDIS__ADDRESS to be set")
			}
			if c.app.Config.Integration.ResendAPIKey == "" {
				c.logger.Warn().Msg("LIGHTBNB_INTEGRATION__RESEND_API_KEY is empty, email delivery will fail")
			}

			if err := c.app.Job.Start(); err != nil {
				return err
			}

			<-c.ctx.Done()
			c.logger.Info().Msg("shutdown signal received")
			c.app.Job.Stop()
			return nil
		},
	}
}
