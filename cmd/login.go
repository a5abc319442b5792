// ABOUTME: Login command establishing an authenticated session
// ABOUTME: Prompts for missing credentials, persists the session on success

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sweetworks/sweetshop-cli/internal/api"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the sweet shop",
	Long:  `Authenticate against the backend and store the session for later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogin(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	email, password := loginEmail, loginPassword
	if email == "" || password == "" {
		if err := promptLogin(&email, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	if err := api.ValidateCredentials(email, password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	sess, _ := newSession()
	user, err := sess.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{"authenticated": true, "user": user}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatSignedIn(user))
	}
	return 0
}

// promptLogin fills in whichever credentials were not passed as flags
func promptLogin(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// formatSignedIn renders the post-authentication confirmation line
func formatSignedIn(user *api.User) string {
	if user == nil {
		return "Logged in."
	}
	line := fmt.Sprintf("Logged in as %s (%s)", user.Name, user.Email)
	if user.IsAdmin {
		line += " [admin]"
	}
	return line
}
