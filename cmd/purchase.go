// ABOUTME: Purchase command buying a quantity of one sweet
// ABOUTME: The backend decrements stock and returns the authoritative new state

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sweetworks/sweetshop-cli/internal/api"
)

var purchaseQuantity int

var purchaseCmd = &cobra.Command{
	Use:   "purchase <sweet-id>",
	Short: "Purchase a sweet",
	Long:  `Purchase a quantity of one sweet. Requires a logged-in session.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPurchase(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	purchaseCmd.Flags().IntVar(&purchaseQuantity, "quantity", 1, "How many to purchase")
	rootCmd.AddCommand(purchaseCmd)
}

// runPurchase executes the purchase and returns an exit code
func runPurchase(ctx context.Context, w io.Writer, id string) int {
	if err := api.ValidateQuantity(purchaseQuantity); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	sess, client := newSession()
	if !sess.IsAuthenticated() {
		fmt.Fprintln(w, "Error: login required. Run 'sweetshop login' first.")
		return 1
	}

	sweet, err := client.PurchaseSweet(ctx, id, purchaseQuantity)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sweet, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Purchased %d x %s. %d left in stock.\n", purchaseQuantity, sweet.Name, sweet.Quantity)
	return 0
}
