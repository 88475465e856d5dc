// Package cli provides output formatting for the Glance CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/glancehq/glance/internal/models"
	"github.com/glancehq/glance/pkg/utils"
)

// OutputFormat is the format for CLI result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates an -output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text or json", s)
}

// WriteSearchResults writes visual search matches to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}
	fmt.Fprintf(w, "\nFound %d match(es) in %dms", response.TotalMatches, response.QueryTime)
	if len(response.Matches) < response.TotalMatches {
		fmt.Fprintf(w, " (showing top %d)", len(response.Matches))
	}
	fmt.Fprintf(w, "\n\n")
	for _, m := range response.Matches {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Confidence: %.4f\n", m.Rank, m.Confidence)
		fmt.Fprintf(w, "ID: %s\n", m.Product.ID)
		if m.Product.Name != "" {
			fmt.Fprintf(w, "Name: %s\n", m.Product.Name)
		}
		if m.Product.Category != "" {
			fmt.Fprintf(w, "Category: %s\n", m.Product.Category)
		}
		if m.Product.Price > 0 {
			fmt.Fprintf(w, "Price: %.2f\n", m.Product.Price)
		}
		fmt.Fprintf(w, "Image: %s\n", m.Product.ImagePath)
		fmt.Fprintln(w)
	}
	return nil
}

// WriteCatalogPage writes one page of the catalog listing to w.
func WriteCatalogPage(w io.Writer, page *models.CatalogPage, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	fmt.Fprintf(w, "Page %d of %d (%d items total)\n\n", page.Page, page.TotalPages, page.TotalItems)
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No products on this page.")
		return nil
	}
	fmt.Fprintf(w, "%-28s %-36s %-16s %10s\n", "ID", "NAME", "CATEGORY", "PRICE")
	for _, p := range page.Items {
		price := ""
		if p.Price > 0 {
			price = fmt.Sprintf("%.2f", p.Price)
		}
		fmt.Fprintf(w, "%-28s %-36s %-16s %10s\n",
			utils.Truncate(p.ID, 28), utils.Truncate(p.Name, 36), utils.Truncate(p.Category, 16), price)
	}
	return nil
}
