package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"github.com/evcraddock/listings/internal/client"
	"github.com/evcraddock/listings/internal/property"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := jsonCodec.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property in text format.
func printPropertySummary(w io.Writer, p *property.Property) {
	fmt.Fprintf(w, "Property #%d\n", p.ID)
	fmt.Fprintf(w, "  Title:    %s\n", p.Title)
	fmt.Fprintf(w, "  Address:  %s\n", p.Address)
	fmt.Fprintf(w, "  Price:    $%s\n", formatPrice(p.Price))
	fmt.Fprintf(w, "  Status:   %s\n", p.Status)
	if p.Description != "" {
		fmt.Fprintf(w, "  About:    %s\n", p.Description)
	}
	fmt.Fprintf(w, "  Listed:   %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	if !p.UpdatedAt.Equal(p.CreatedAt) {
		fmt.Fprintf(w, "  Updated:  %s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

// printPropertyTable prints a page of properties as a formatted table.
func printPropertyTable(out io.Writer, resp *client.ListResponse) error {
	if len(resp.Properties) == 0 {
		_, err := fmt.Fprintln(out, "No properties found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tADDRESS\tPRICE\tSTATUS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t-------\t-----\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range resp.Properties {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t$%s\t%s\n",
			p.ID, truncate(p.Title, 30), truncate(p.Address, 40), formatPrice(p.Price), p.Status); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	pg := resp.Pagination
	if pg.Offset != nil && pg.Limit != nil {
		first := *pg.Offset + 1
		last := *pg.Offset + len(resp.Properties)
		_, err := fmt.Fprintf(out, "\nShowing %d-%d of %d properties\n", first, last, pg.Total)
		return err
	}
	_, err := fmt.Fprintf(out, "\nTotal: %d properties\n", pg.Total)
	return err
}

// formatPrice formats a price with thousands separators. Cents are shown
// only when the price is not a whole number of dollars.
func formatPrice(price float64) string {
	whole, frac := math.Modf(price)
	s := strconv.FormatFloat(whole, 'f', 0, 64)

	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}

	cents := math.Round(frac * 100)
	if cents == 0 {
		return s
	}
	if cents >= 100 {
		return formatPrice(whole + 1)
	}
	return fmt.Sprintf("%s.%02d", s, int(cents))
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
