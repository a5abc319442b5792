// ABOUTME: List command fetching and filtering the sweet catalog
// ABOUTME: Supports search, category, and price-range filters with table or JSON output

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sweetworks/sweetshop-cli/internal/api"
	"github.com/sweetworks/sweetshop-cli/internal/catalog"
)

var (
	listSearch   string
	listCategory string
	listMinPrice float64
	listMaxPrice float64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sweets in the catalog",
	Long:  `Fetch the catalog from the backend and print it, optionally filtered.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "Match name or description (case-insensitive)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Match category exactly")
	listCmd.Flags().Float64Var(&listMinPrice, "min-price", 0, "Minimum price")
	listCmd.Flags().Float64Var(&listMaxPrice, "max-price", catalog.NoMaxPrice, "Maximum price")
	rootCmd.AddCommand(listCmd)
}

// runList fetches, filters, and prints the catalog, returning an exit code
func runList(ctx context.Context, w io.Writer) int {
	_, client := newSession()
	cache := catalog.NewCache(client)

	sweets, err := cache.Sweets(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	filter := catalog.Filter{
		Search:   listSearch,
		Category: listCategory,
		MinPrice: listMinPrice,
		MaxPrice: listMaxPrice,
	}
	filtered := filter.Apply(sweets)

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(filtered, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(filtered) == 0 {
		fmt.Fprintln(w, "No sweets match.")
		return 0
	}
	fmt.Fprint(w, formatSweetsTable(filtered))
	return 0
}

// formatSweetsTable renders the catalog as an aligned text table
func formatSweetsTable(sweets []api.Sweet) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, s := range sweets {
		stock := fmt.Sprintf("%d", s.Quantity)
		if !s.InStock() {
			stock = "out of stock"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", s.ID, s.Name, s.Category, s.Price, stock)
	}
	tw.Flush()
	return sb.String()
}
