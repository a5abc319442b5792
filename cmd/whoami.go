// ABOUTME: Whoami command showing the current session state
// ABOUTME: Reads only the local store, never the network

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who is currently logged in",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runWhoami(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the session state and returns an exit code: 1 when
// anonymous so scripts can gate on it.
func runWhoami(w io.Writer) int {
	sess, _ := newSession()

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{
			"authenticated": sess.IsAuthenticated(),
			"user":          sess.User(),
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		if !sess.IsAuthenticated() {
			return 1
		}
		return 0
	}

	if !sess.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	user := sess.User()
	if user == nil {
		// Token restored from disk but no cached profile alongside it.
		fmt.Fprintln(w, "Logged in (no cached profile).")
		return 0
	}
	fmt.Fprintln(w, formatSignedIn(user))
	return 0
}
