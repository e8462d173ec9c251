package cmd

import (
	"context"
	"os"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func occupantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "occupant",
		Short: "Manage occupants",
	}

	cmd.AddCommand(
		occupantListCmd(),
		occupantGetCmd(),
		occupantAddCmd(),
		occupantUpdateCmd(),
		occupantRemoveCmd(),
	)

	return cmd
}

func occupantListCmd() *cobra.Command {
	var roomID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List occupants",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			occupants, err := apiClient.FetchOccupants(context.Background(), roomID)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			if len(occupants) == 0 {
				cmd.Println("No occupants found.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Name", "Phone", "Room", "ID"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)

			for _, o := range occupants {
				table.Append([]string{o.FullName, o.PhoneNumber, o.RoomID, o.ID})
			}
			table.Render()
		},
	}
	cmd.Flags().StringVarP(&roomID, "room", "r", "", "Only show occupants of this room")
	return cmd
}

func occupantGetCmd() *cobra.Command {
	var occupantID string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show information about a specific occupant",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			occupant, err := apiClient.FetchOccupant(context.Background(), occupantID)
			if err != nil {
				printRequestError(cmd, err)
				return
			}

			cmd.Println("Occupant Information:")
			cmd.Printf("ID: %s\n", occupant.ID)
			cmd.Printf("Name: %s\n", occupant.FullName)
			cmd.Printf("Phone: %s\n", occupant.PhoneNumber)
			cmd.Printf("Identity number: %s\n", occupant.IdentityNumber)
			cmd.Printf("Room: %s\n", occupant.RoomID)
			cmd.Printf("Contract: %s\n", occupant.ContractID)
		},
	}
	cmd.Flags().StringVarP(&occupantID, "id", "i", "", "ID of the occupant")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func occupantAddCmd() *cobra.Command {
	var input client.OccupantInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new occupant",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("full name", input.FullName); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			occupant, err := apiClient.CreateOccupant(context.Background(), input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Occupant %s created with ID %s.\n", occupant.FullName, occupant.ID)
		},
	}
	cmd.Flags().StringVarP(&input.FullName, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(&input.PhoneNumber, "phone", "p", "", "Phone number")
	cmd.Flags().StringVar(&input.IdentityNumber, "identity", "", "Identity card number")
	cmd.Flags().StringVarP(&input.RoomID, "room", "r", "", "ID of the room")
	cmd.Flags().StringVarP(&input.ContractID, "contract", "c", "", "ID of the contract")
	return cmd
}

func occupantUpdateCmd() *cobra.Command {
	var occupantID string
	var input client.OccupantInput
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing occupant",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			occupant, err := apiClient.UpdateOccupant(context.Background(), occupantID, input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Occupant %s updated.\n", occupant.FullName)
		},
	}
	cmd.Flags().StringVarP(&occupantID, "id", "i", "", "ID of the occupant")
	cmd.Flags().StringVarP(&input.FullName, "name", "n", "", "New full name")
	cmd.Flags().StringVarP(&input.PhoneNumber, "phone", "p", "", "New phone number")
	cmd.Flags().StringVarP(&input.RoomID, "room", "r", "", "New room ID")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func occupantRemoveCmd() *cobra.Command {
	var occupantID string
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete an occupant",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			if err := apiClient.DeleteOccupant(context.Background(), occupantID); err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Println("Occupant deleted.")
		},
	}
	cmd.Flags().StringVarP(&occupantID, "id", "i", "", "ID of the occupant")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}
