// ABOUTME: Register command creating a new account on the backend
// ABOUTME: Adopts the session when the backend issues a token with the response

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
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create an account on the backend. If the backend issues a session token
with the registration response you are logged in immediately; otherwise run
'sweetshop login' afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRegister(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes the registration flow and returns an exit code
func runRegister(ctx context.Context, w io.Writer) int {
	name, email, password := registerName, registerEmail, registerPassword
	if name == "" || email == "" || password == "" {
		if err := promptRegister(&name, &email, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	if err := api.ValidateRegistration(name, email, password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	sess, _ := newSession()
	user, established, err := sess.Register(ctx, name, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCodeForError(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]any{"registered": true, "authenticated": established, "user": user}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if established {
		fmt.Fprintf(w, "Registered. %s\n", formatSignedIn(user))
	} else {
		fmt.Fprintln(w, "Registered. Run 'sweetshop login' to sign in.")
	}
	return 0
}

// promptRegister fills in whichever fields were not passed as flags
func promptRegister(name, email, password *string) error {
	var fields []huh.Field
	if *name == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(name))
	}
	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
