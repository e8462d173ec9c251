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

func amenityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amenity",
		Short: "Manage amenities",
	}

	cmd.AddCommand(
		amenityListCmd(),
		amenityGetCmd(),
		amenityAddCmd(),
		amenityUpdateCmd(),
		amenityRemoveCmd(),
	)

	return cmd
}

func amenityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List amenities",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			amenities, err := apiClient.FetchAmenities(context.Background())
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			if len(amenities) == 0 {
				cmd.Println("No amenities found.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Name", "Note", "ID"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)

			for _, a := range amenities {
				table.Append([]string{a.Name, a.Note, a.ID})
			}
			table.Render()
		},
	}
}

func amenityGetCmd() *cobra.Command {
	var amenityID string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show information about a specific amenity",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			amenity, err := apiClient.FetchAmenity(context.Background(), amenityID)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("ID: %s\n", amenity.ID)
			cmd.Printf("Name: %s\n", amenity.Name)
			if amenity.Note != "" {
				cmd.Printf("Note: %s\n", amenity.Note)
			}
		},
	}
	cmd.Flags().StringVarP(&amenityID, "id", "i", "", "ID of the amenity")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func amenityAddCmd() *cobra.Command {
	var input client.AmenityInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new amenity",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("name", input.Name); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			amenity, err := apiClient.CreateAmenity(context.Background(), input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Amenity %s created with ID %s.\n", amenity.Name, amenity.ID)
		},
	}
	cmd.Flags().StringVarP(&input.Name, "name", "n", "", "Amenity name")
	cmd.Flags().StringVar(&input.Note, "note", "", "Optional note")
	return cmd
}

func amenityUpdateCmd() *cobra.Command {
	var amenityID string
	var input client.AmenityInput
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing amenity",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			amenity, err := apiClient.UpdateAmenity(context.Background(), amenityID, input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Amenity %s updated.\n", amenity.Name)
		},
	}
	cmd.Flags().StringVarP(&amenityID, "id", "i", "", "ID of the amenity")
	cmd.Flags().StringVarP(&input.Name, "name", "n", "", "New name")
	cmd.Flags().StringVar(&input.Note, "note", "", "New note")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func amenityRemoveCmd() *cobra.Command {
	var amenityID string
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete an amenity",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			if err := apiClient.DeleteAmenity(context.Background(), amenityID); err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Println("Amenity deleted.")
		},
	}
	cmd.Flags().StringVarP(&amenityID, "id", "i", "", "ID of the amenity")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}
