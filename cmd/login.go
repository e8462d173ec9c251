package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/decoutkhanqindev/motelctl/auth"
	"github.com/decoutkhanqindev/motelctl/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd creates a new cobra.Command for logging into the management service.
func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the management service",
		Long:  "Log in to the room-rental management service using your username and password",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Please enter your username and password.")
			username := promptForInput("Username: ")
			password := promptForPassword("Password: ")

			if !validateCredentials(username, password) {
				cmd.PrintErrln("Error: Username and password cannot be empty.")
				return
			}

			_, service, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				log.Error().Err(err).Msg("Failed to construct services")
				return
			}

			profile, err := service.Login(context.Background(), username, password)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Login was successful. Welcome, %s (%s).\n", profile.Username, profile.Role)
		},
	}

	return cmd
}

// logoutCmd ends the session. Local state is cleared even when the server
// round-trip fails; the operator is told when that happened.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the management service",
		Run: func(cmd *cobra.Command, args []string) {
			_, service, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				log.Error().Err(err).Msg("Failed to construct services")
				return
			}

			if err := service.Logout(context.Background()); err != nil {
				cmd.PrintErrln("Warning: The server could not be notified, but your local session was cleared.")
				log.Warn().Err(err).Msg("Server-side logout failed")
				return
			}
			cmd.Println("Logged out.")
		},
	}
}

// statusCmd shows whether a session credential is stored and, when the token
// happens to be a JWT, its expiry.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		Run: func(cmd *cobra.Command, args []string) {
			repo := db.NewCredentialRepository(db.Db)
			cred, err := repo.Get(context.Background())
			if err != nil {
				cmd.PrintErrln("Error: Failed to read the stored credential.")
				log.Error().Err(err).Msg("Failed to read credential")
				return
			}
			if cred == nil {
				cmd.Println("Not logged in.")
				return
			}

			cmd.Printf("Logged in as: %s\n", cred.Username)
			if expiry, ok := auth.TokenExpiry(cred.Token); ok {
				cmd.Printf("Token expires: %s\n", expiry.Format(time.RFC3339))
			}
		},
	}
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// validateCredentials checks if the username and password are not empty.
func validateCredentials(username, password string) bool {
	return username != "" && password != ""
}
