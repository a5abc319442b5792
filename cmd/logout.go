// ABOUTME: Logout command clearing the persisted session
// ABOUTME: Purely local; the backend keeps no revocable server-side session

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runLogout(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns an exit code. Logging out while
// already logged out is fine.
func runLogout(w io.Writer) int {
	sess, _ := newSession()
	wasAuthenticated := sess.IsAuthenticated()
	sess.Logout()

	if wasAuthenticated {
		fmt.Fprintln(w, "Logged out.")
	} else {
		fmt.Fprintln(w, "Not logged in.")
	}
	return 0
}
