package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/utils"
	"github.com/deppfellow/lightbnb/internal/model"
)

// printError writes err for a human. Classified errors print their public
// message and field errors; anything else prints as is.
func printError(w io.Writer, err error) {
	var appErr *errs.Error
	if errs.IsQueryExecution(err) || errors.As(err, &appErr) {
		public := errs.Public(err)
		fmt.Fprintf(w, "Error: %s (%s)\n", public.Message, public.Code)
		for _, fe := range public.Errors {
			fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Error)
		}
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
}

func (c *cli) print(v any, text func(io.Writer)) error {
	if c.asJSON {
		return utils.PrintJSON(c.out, v)
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', 2, 64)
}

func writeListings(w io.Writer, listings []model.PropertyListing) {
	fmt.Fprintln(w, "ID\tTITLE\tCITY\tPRICE/NIGHT\tBEDS\tBATHS\tRATING")
	for _, l := range listings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			l.ID, l.Title, l.City, l.NightlyPrice().StringFixed(2),
			l.NumberOfBedrooms, l.NumberOfBathrooms, formatRating(l.AverageRating))
	}
}

func writeProperty(w io.Writer, p *model.Property) {
	fmt.Fprintf(w, "ID\t%d\n", p.ID)
	fmt.Fprintf(w, "OWNER\t%d\n", p.OwnerID)
	fmt.Fprintf(w, "TITLE\t%s\n", p.Title)
	fmt.Fprintf(w, "ADDRESS\t%s, %s, %s %s, %s\n", p.Street, p.City, p.Province, p.PostCode, p.Country)
	fmt.Fprintf(w, "PRICE/NIGHT\t%s\n", p.NightlyPrice().StringFixed(2))
}

func writeUser(w io.Writer, u *model.User) {
	fmt.Fprintf(w, "ID\t%d\n", u.ID)
	fmt.Fprintf(w, "NAME\t%s\n", u.Name)
	fmt.Fprintf(w, "EMAIL\t%s\n", u.Email)
}

func writeReservations(w io.Writer, reservations []model.GuestReservation) {
	fmt.Fprintln(w, "ID\tSTART\tEND\tPROPERTY\tPRICE/NIGHT\tRATING")
	for _, r := range reservations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"),
			r.Property.Title, r.Property.NightlyPrice().StringFixed(2),
			formatRating(r.Property.AverageRating))
	}
}
