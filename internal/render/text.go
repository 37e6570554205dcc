package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText renders the view as a terminal table.
func WriteText(w io.Writer, v View) error {
	if v.Error != "" {
		_, err := fmt.Fprintln(w, v.Error)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s  [favorites: %d]\n", v.Count, v.FavoritesCount); err != nil {
		return err
	}
	if len(v.Cards) == 0 {
		_, err := fmt.Fprintln(w, v.Empty)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tCODE\tINSPIRED BY\tBRAND\tTAGS")
	for _, card := range v.Cards {
		mark := " "
		if card.Favorite {
			mark = "*"
		}
		tags := make([]string, 0, len(card.Badges))
		for _, b := range card.Badges {
			tags = append(tags, b.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, card.Code, card.InspiredBy, card.Brand, strings.Join(tags, ", "))
	}
	return tw.Flush()
}
