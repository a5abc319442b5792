// ABOUTME: Create command adding a new sweet to the catalog
// ABOUTME: Admin-only on the backend; input is validated locally before sending

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

var createInput api.SweetInput

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a sweet to the catalog (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runCreate(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	addSweetFlags(createCmd, &createInput)
	rootCmd.AddCommand(createCmd)
}

// addSweetFlags registers the shared item-field flags used by create and update
func addSweetFlags(cmd *cobra.Command, input *api.SweetInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "Sweet name")
	cmd.Flags().StringVar(&input.Category, "category", "", "Category")
	cmd.Flags().StringVar(&input.Description, "description", "", "Description")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Unit price")
	cmd.Flags().IntVar(&input.Quantity, "quantity", 0, "Stock quantity")
	cmd.Flags().StringVar(&input.ImageURL, "image-url", "", "Image URL")
}

// runCreate executes the create call and returns an exit code
func runCreate(ctx context.Context, w io.Writer) int {
	if err := createInput.Validate(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	sess, client := newSession()
	if !sess.IsAuthenticated() {
		fmt.Fprintln(w, "Error: login required. Run 'sweetshop login' first.")
		return 1
	}

	sweet, err := client.CreateSweet(ctx, &createInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sweet, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Created %s (%s), %.2f, %d in stock.\n", sweet.Name, sweet.ID, sweet.Price, sweet.Quantity)
	return 0
}
