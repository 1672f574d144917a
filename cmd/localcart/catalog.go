package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"localcart/internal/catalog"
	"localcart/internal/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the built-in sample catalog",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().String("category", "", `Category filter, e.g. "Food" or "Interior Designs"`)
	catalogCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	format, _ := cmd.Flags().GetString("format")

	cat := catalog.Default()
	products := cat.All()
	if category != "" {
		c, ok := domain.ParseCategory(category)
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}
		products = cat.ByCategory(c)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	default:
		printProductsTable(cmd, products)
	}
	return nil
}

func printProductsTable(cmd *cobra.Command, products []domain.Product) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tPRICE (RWF)\tPICKUP")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Category.DisplayName(), p.Price.StringFixed(0), catalog.Location(p))
	}
	_ = w.Flush()
}
