package main

import (
	"context"
	"fmt"
	"io"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/logger"
	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// skipTransaction marks long running commands that must not be wrapped in
// a single New Relic transaction.
const skipTransaction = "skip-transaction"

// cli carries per-invocation state shared by every subcommand.
type cli struct {
	ctx           context.Context
	app           *app.App
	logger        zerolog.Logger
	loggerService *logger.LoggerService
	txn           *newrelic.Transaction

	requestID string
	asJSON    bool
	out       io.Writer
}

func newRootCommand() (*cobra.Command, *cli) {
	c := &cli{}

	root := &cobra.Command{
		Use:           "lightbnb",
		Short:         "Query and manage LightBnB listings, users and reservations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.requestID, "request-id", "", "request id attached to every log line (UUID, generated when empty)")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		newSearchCommand(c),
		newUserCommand(c),
		newReservationsCommand(c),
		newPropertyCommand(c),
		newStatusCommand(c),
		newWorkerCommand(c),
	)

	return root, c
}

// setup loads config and builds the application for cmd.
func (c *cli) setup(cmd *cobra.Command) error {
	c.out = cmd.OutOrStdout()

	if c.requestID == "" {
		c.requestID = uuid.NewString()
	} else if _, err := uuid.Parse(c.requestID); err != nil {
		return fmt.Errorf("invalid --request-id %q: must be a UUID", c.requestID)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c.loggerService = logger.NewLoggerService(cfg.Observability)
	c.logger = logger.NewLoggerWithService(cfg.Observability, c.loggerService).With().
		Str("request_id", c.requestID).
		Str("command", cmd.CommandPath()).
		Logger()

	ctx := cmd.Context()
	if nrApp := c.loggerService.GetApplication(); nrApp != nil && cmd.Annotations[skipTransaction] == "" {
		c.txn = nrApp.StartTransaction(cmd.CommandPath())
		c.txn.AddAttribute("request_id", c.requestID)
		ctx = newrelic.NewContext(ctx, c.txn)
		c.logger = logger.WithTraceContext(c.logger, c.txn)
	}
	c.ctx = c.logger.WithContext(ctx)

	c.app, err = app.New(c.ctx, cfg, &c.logger, c.loggerService)
	if err != nil {
		return err
	}

	return nil
}

// close releases everything setup acquired. err is the command's result.
func (c *cli) close(err error) {
	if c.app != nil {
		if closeErr := c.app.Close(); closeErr != nil {
			c.logger.Error().Err(closeErr).Msg("failed to close application")
		}
	}

	if c.txn != nil {
		if err != nil {
			c.txn.NoticeError(err)
		}
		c.txn.End()
	}

	c.loggerService.Shutdown()
}
