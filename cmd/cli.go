package cmd

import (
	"os"

	"github.com/decoutkhanqindev/motelctl/auth"
	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Execute() {
	rootCmd := createRootCmd()
	initializeDatabase()
	defer closeDatabase()

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		os.Exit(1)
	}
}

func createRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "motelctl",
		Short: "An admin client for the room-rental management service",
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		statusCmd(),
		roomCmd(),
		contractCmd(),
		occupantCmd(),
		amenityCmd(),
		utilityCmd(),
		userCmd(),
		catalogueCmd(),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

func initializeDatabase() {
	if err := db.InitDB(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		os.Exit(1)
	}
}

func closeDatabase() {
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
		os.Exit(1)
	}
}

// newServices wires the credential store, the resilient client, and the auth
// service together. The client reads the store; the service writes it; the
// recovery hook closes the loop.
func newServices() (*client.Client, *auth.Service, error) {
	repo := db.NewCredentialRepository(db.Db)
	apiClient, err := client.New(client.BaseURL(), repo)
	if err != nil {
		return nil, nil, err
	}
	service := auth.NewService(repo, apiClient)
	apiClient.SetRecoverer(&sessionRecoverer{service: service})
	return apiClient, service, nil
}
