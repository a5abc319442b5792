// ABOUTME: Delete command removing a sweet from the catalog
// ABOUTME: Admin-only on the backend

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <sweet-id>",
	Short: "Remove a sweet from the catalog (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runDelete(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

// runDelete executes the delete call and returns an exit code
func runDelete(ctx context.Context, w io.Writer, id string) int {
	sess, client := newSession()
	if !sess.IsAuthenticated() {
		fmt.Fprintln(w, "Error: login required. Run 'sweetshop login' first.")
		return 1
	}

	if err := client.DeleteSweet(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	fmt.Fprintf(w, "Deleted %s.\n", id)
	return 0
}
