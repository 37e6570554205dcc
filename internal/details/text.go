package details

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText renders the model for a terminal. The description is printed as
// written, without markdown rendering.
func WriteText(w io.Writer, m Model) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Code:\t%s\n", m.Code)
	fmt.Fprintf(tw, "Inspired by:\t%s\n", m.InspiredBy)
	fmt.Fprintf(tw, "Brand:\t%s\n", m.Brand)
	if m.BrandDescription != "" {
		fmt.Fprintf(tw, "\t%s\n", m.BrandDescription)
	}
	fmt.Fprintf(tw, "Gender:\t%s\n", m.GenderAffinity)
	fmt.Fprintf(tw, "Accords:\t%s\n", strings.Join(m.MainAccords, ", "))
	if len(m.Seasons) > 0 {
		fmt.Fprintf(tw, "Seasons:\t%s\n", strings.Join(m.Seasons, ", "))
	}
	if len(m.Occasions) > 0 {
		fmt.Fprintf(tw, "Occasions:\t%s\n", strings.Join(m.Occasions, ", "))
	}
	for _, tier := range m.Notes {
		fmt.Fprintf(tw, "%s notes:\t%s\n", strings.ToUpper(tier.Name[:1])+tier.Name[1:], strings.Join(tier.Notes, ", "))
	}
	fmt.Fprintf(tw, "Boost:\t%s\n", m.Boost.Class)
	for _, dose := range m.Boost.Dosage {
		fmt.Fprintf(tw, "\t%s -> %s\n", dose.Bottle, dose.Amount)
	}
	fmt.Fprintf(tw, "Buy:\t%s\n", m.PurchaseURL)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", m.Description)
	return err
}
