// ABOUTME: Root command for the sweetshop CLI
// ABOUTME: Handles global flags, configuration, and shared command plumbing

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/sweetworks/sweetshop-cli/internal/api"
	"github.com/sweetworks/sweetshop-cli/internal/config"
	"github.com/sweetworks/sweetshop-cli/internal/credstore"
	"github.com/sweetworks/sweetshop-cli/internal/session"
)

var (
	apiURL     string
	configDir  string
	jsonOutput bool

	cfgOnce sync.Once
	cfg     *config.Config
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "sweetshop",
	Short: "Terminal client for the sweet shop",
	Long: `sweetshop is a terminal client for a sweets catalog backend.

Browse the catalog, purchase sweets, and (as an admin) manage the inventory,
either through subcommands or the interactive storefront ('sweetshop browse').

Environment Variables:
  SWEETSHOP_API_URL     Backend API URL (default: http://localhost:3000/api)
  SWEETSHOP_TIMEOUT     Request timeout (default: 30s)
  SWEETSHOP_CONFIG_DIR  Directory for stored credentials and logs
  SWEETSHOP_DEBUG       Write a debug log under the config directory`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SWEETSHOP_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// getConfig loads configuration once. A broken environment degrades to the
// built-in defaults rather than aborting.
func getConfig() *config.Config {
	cfgOnce.Do(func() {
		c, err := config.Load(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read configuration: %v\n", err)
			c = config.Default()
		}
		cfg = c
	})
	return cfg
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	return getConfig().APIURL
}

// GetConfigDir returns the directory holding stored credentials and logs
func GetConfigDir() string {
	if configDir != "" {
		return configDir
	}
	return getConfig().ConfigDir
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newSession builds the API client and session manager every command shares,
// restoring any credentials persisted by a previous run.
func newSession() (*session.Manager, *api.Client) {
	client := api.New(GetAPIURL(), api.WithTimeout(getConfig().Timeout))
	sess := session.New(credstore.New(GetConfigDir()), client)
	sess.Restore()
	return sess, client
}

// exitCodeForError maps failures to exit codes: 2 when the backend was
// unreachable, 1 for anything it rejected.
func exitCodeForError(err error) int {
	var te *api.TransportError
	if errors.As(err, &te) {
		return 2
	}
	return 1
}
