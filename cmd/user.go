package cmd

import (
	"context"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(
		userMeCmd(),
		userRegisterCmd(),
		userUpdateCmd(),
		userPasswordCmd(),
	)

	return cmd
}

func userMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in account",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			profile, err := apiClient.FetchCurrentUser(context.Background())
			if err != nil {
				printRequestError(cmd, err)
				return
			}

			cmd.Printf("ID: %s\n", profile.ID)
			cmd.Printf("Username: %s\n", profile.Username)
			cmd.Printf("Role: %s\n", profile.Role)
			if profile.Email != "" {
				cmd.Printf("Email: %s\n", profile.Email)
			}
		},
	}
}

func userRegisterCmd() *cobra.Command {
	var input client.UserInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Create a new account. This endpoint does not require a session.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("username", input.Username); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if input.Password == "" {
				input.Password = promptForPassword("Password for the new account: ")
			}

			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			profile, err := apiClient.RegisterUser(context.Background(), input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Account %s created with ID %s.\n", profile.Username, profile.ID)
		},
	}
	cmd.Flags().StringVarP(&input.Username, "username", "u", "", "Username for the new account")
	cmd.Flags().StringVarP(&input.Role, "role", "r", "", "Role of the new account")
	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "Email address")
	return cmd
}

func userUpdateCmd() *cobra.Command {
	var userID string
	var input client.UserInput
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an account",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			profile, err := apiClient.UpdateUser(context.Background(), userID, input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Account %s updated.\n", profile.Username)
		},
	}
	cmd.Flags().StringVarP(&userID, "id", "i", "", "ID of the account")
	cmd.Flags().StringVarP(&input.PhoneNumber, "phone", "p", "", "New phone number")
	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "New email address")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func userPasswordCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change an account's password",
		Run: func(cmd *cobra.Command, args []string) {
			oldPassword := promptForPassword("Current password: ")
			newPassword := promptForPassword("New password: ")
			if newPassword == "" {
				cmd.PrintErrln("Error: New password cannot be empty.")
				return
			}

			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			if err := apiClient.ChangePassword(context.Background(), userID, oldPassword, newPassword); err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Println("Password changed.")
		},
	}
	cmd.Flags().StringVarP(&userID, "id", "i", "", "ID of the account")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}
