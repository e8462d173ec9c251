package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func roomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms",
	}

	cmd.AddCommand(
		roomListCmd(),
		roomGetCmd(),
		roomAddCmd(),
		roomUpdateCmd(),
		roomRemoveCmd(),
		roomImageCmd(),
	)

	return cmd
}

func roomListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		Run: func(cmd *cobra.Command, args []string) {
			if status != "" {
				if err := validation.ValidateRoomStatus(status); err != nil {
					cmd.PrintErrln("Error:", err)
					return
				}
			}

			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			rooms, err := apiClient.FetchRooms(context.Background(), status)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			if len(rooms) == 0 {
				cmd.Println("No rooms found.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Room", "Status", "Rent Price", "ID"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)
			table.SetRowLine(false)

			for _, room := range rooms {
				table.Append([]string{
					room.RoomNumber,
					statusLabel(room.Status),
					fmt.Sprintf("%d", room.RentPrice),
					room.ID,
				})
			}
			table.Render()
			log.Info().Msgf("Successfully listed %d rooms.", len(rooms))
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status [available, occupied, unavailable]")
	return cmd
}

func roomGetCmd() *cobra.Command {
	var roomID string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show information about a specific room",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			room, _, err := apiClient.FetchRoom(context.Background(), roomID)
			if err != nil {
				printRequestError(cmd, err)
				return
			}

			cmd.Println("Room Information:")
			cmd.Printf("ID: %s\n", room.ID)
			cmd.Printf("Number: %s\n", room.RoomNumber)
			cmd.Printf("Status: %s\n", statusLabel(room.Status))
			cmd.Printf("Rent price: %d\n", room.RentPrice)
			if room.Description != "" {
				cmd.Printf("Description: %s\n", room.Description)
			}
			if len(room.Amenities) > 0 {
				names := make([]string, 0, len(room.Amenities))
				for _, a := range room.Amenities {
					names = append(names, a.Name)
				}
				cmd.Printf("Amenities: %s\n", strings.Join(names, ", "))
			}
			if len(room.Images) > 0 {
				cmd.Printf("Images: %s\n", strings.Join(room.Images, ", "))
			}
		},
	}
	cmd.Flags().StringVarP(&roomID, "id", "i", "", "ID of the room")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func roomAddCmd() *cobra.Command {
	var input client.RoomInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new room",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("room number", input.RoomNumber); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidatePrice("rent price", input.RentPrice); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			room, err := apiClient.CreateRoom(context.Background(), input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Room %s created with ID %s.\n", room.RoomNumber, room.ID)
		},
	}
	cmd.Flags().StringVarP(&input.RoomNumber, "number", "n", "", "Room number")
	cmd.Flags().Int64VarP(&input.RentPrice, "price", "p", 0, "Monthly rent price")
	cmd.Flags().StringVarP(&input.Description, "description", "d", "", "Room description")
	return cmd
}

func roomUpdateCmd() *cobra.Command {
	var roomID string
	var input client.RoomInput
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing room",
		Run: func(cmd *cobra.Command, args []string) {
			if input.Status != "" {
				if err := validation.ValidateRoomStatus(input.Status); err != nil {
					cmd.PrintErrln("Error:", err)
					return
				}
			}

			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			room, err := apiClient.UpdateRoom(context.Background(), roomID, input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Room %s updated.\n", room.RoomNumber)
		},
	}
	cmd.Flags().StringVarP(&roomID, "id", "i", "", "ID of the room")
	cmd.Flags().StringVarP(&input.Status, "status", "s", "", "New status [available, occupied, unavailable]")
	cmd.Flags().Int64VarP(&input.RentPrice, "price", "p", 0, "New rent price")
	cmd.Flags().StringVarP(&input.Description, "description", "d", "", "New description")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func roomRemoveCmd() *cobra.Command {
	var roomID string
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a room",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			if err := apiClient.DeleteRoom(context.Background(), roomID); err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Println("Room deleted.")
		},
	}
	cmd.Flags().StringVarP(&roomID, "id", "i", "", "ID of the room")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func roomImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage room images",
	}
	cmd.AddCommand(roomImageUploadCmd(), roomImageDownloadCmd())
	return cmd
}

func roomImageUploadCmd() *cobra.Command {
	var roomID string
	cmd := &cobra.Command{
		Use:   "upload [files...]",
		Short: "Upload image files for a room",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			imageIDs, err := apiClient.UploadRoomImages(context.Background(), roomID, args)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Uploaded %d image(s): %s\n", len(imageIDs), strings.Join(imageIDs, ", "))
		},
	}
	cmd.Flags().StringVarP(&roomID, "id", "i", "", "ID of the room")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func roomImageDownloadCmd() *cobra.Command {
	var imageID, destPath string
	var rateLimit int64
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a room image to a local file",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			client.SetGlobalDownloadRateLimit(rateLimit)
			if err := apiClient.DownloadRoomImage(context.Background(), imageID, destPath); err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Image saved to %s.\n", destPath)
		},
	}
	cmd.Flags().StringVarP(&imageID, "id", "i", "", "ID of the image")
	cmd.Flags().StringVarP(&destPath, "output", "o", "", "Destination file path")
	cmd.Flags().Int64VarP(&rateLimit, "limit-rate", "l", 0, "Download rate limit in bytes per second (0 for unlimited)")
	for _, flag := range []string{"id", "output"} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			log.Error().Err(err).Msgf("Failed to mark '%s' flag as required", flag)
		}
	}
	return cmd
}
