// ABOUTME: Update command replacing a sweet's fields
// ABOUTME: Sends the full record; the backend returns the authoritative new state

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

var updateInput api.SweetInput

var updateCmd = &cobra.Command{
	Use:   "update <sweet-id>",
	Short: "Update a sweet in the catalog (admin)",
	Long: `Update a sweet. This replaces every field, so pass all of them; an omitted
flag writes its zero value.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runUpdate(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	addSweetFlags(updateCmd, &updateInput)
	rootCmd.AddCommand(updateCmd)
}

// runUpdate executes the update call and returns an exit code
func runUpdate(ctx context.Context, w io.Writer, id string) int {
	if err := updateInput.Validate(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	sess, client := newSession()
	if !sess.IsAuthenticated() {
		fmt.Fprintln(w, "Error: login required. Run 'sweetshop login' first.")
		return 1
	}

	sweet, err := client.UpdateSweet(ctx, id, &updateInput)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sweet, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Updated %s (%s), %.2f, %d in stock.\n", sweet.Name, sweet.ID, sweet.Price, sweet.Quantity)
	return 0
}
