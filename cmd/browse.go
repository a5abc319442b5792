// ABOUTME: Browse command launching the interactive storefront TUI
// ABOUTME: Wires the session, client, and catalog cache into the bubbletea app

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sweetworks/sweetshop-cli/internal/catalog"
	"github.com/sweetworks/sweetshop-cli/internal/debuglog"
	"github.com/sweetworks/sweetshop-cli/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the sweet shop interactively",
	Long:  `Open the full-screen storefront: browse and search the catalog, purchase sweets, and manage the inventory as an admin.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBrowse(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// runBrowse starts the TUI with a restored session
func runBrowse() error {
	if getConfig().Debug {
		if err := debuglog.Init(GetConfigDir()); err == nil {
			defer debuglog.Close()
		}
	}

	sess, client := newSession()
	cache := catalog.NewCache(client)
	return tui.Run(sess, client, cache)
}
