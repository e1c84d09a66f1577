package main

import (
	"fmt"
	"io"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func newReservationsCommand(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reservations <guest_id>",
		Short: "List a guest's reservations, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guestID, err := cast.ToIntE(args[0])
			if err != nil {
				return fmt.Errorf("invalid guest id %q: %w", args[0], err)
			}

			reservations, err := c.app.Services.Reservations.ListForGuest(c.ctx, guestID, limit)
			if err != nil {
				return err
			}

			return c.print(reservations, func(w io.Writer) { writeReservations(w, reservations) })
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of results (default from config)")

	return cmd
}
