package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/db"
	"github.com/decoutkhanqindev/motelctl/pkg/pool"
	"github.com/decoutkhanqindev/motelctl/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// catalogueCmd manages the local room catalogue: a sqlite cache of room data
// refreshed from the API so rooms can be browsed offline.
func catalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Manage the local room catalogue",
	}

	cmd.AddCommand(
		catalogueListCmd(),
		catalogueSearchCmd(),
		catalogueInfoCmd(),
		catalogueRefreshCmd(),
		catalogueExportCmd(),
	)

	return cmd
}

func catalogueListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all rooms in the local catalogue",
		Run:   listCatalogue,
	}
}

func listCatalogue(cmd *cobra.Command, args []string) {
	log.Info().Msg("Listing all rooms in the catalogue...")

	repo := db.NewRoomCatalogueRepository(db.Db)
	records, err := repo.List(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Unable to list rooms. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to fetch rooms from the local catalogue.")
		return
	}

	if len(records) == 0 {
		cmd.Println("No rooms found in the catalogue. Use `motelctl catalogue refresh` to update the catalogue.")
		return
	}

	renderCatalogueTable(records)
	log.Info().Msgf("Successfully listed %d rooms in the catalogue.", len(records))
}

func renderCatalogueTable(records []db.RoomRecord) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "Status", "Rent Price", "Remote ID"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, rec := range records {
		table.Append([]string{
			rec.RoomNumber,
			statusLabel(rec.Status),
			fmt.Sprintf("%d", rec.RentPrice),
			rec.RemoteID,
		})
	}
	table.Render()
}

func catalogueSearchCmd() *cobra.Command {
	var number string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the local catalogue by room number",
		Run: func(cmd *cobra.Command, args []string) {
			repo := db.NewRoomCatalogueRepository(db.Db)
			records, err := repo.SearchByNumber(context.Background(), number)
			if err != nil {
				cmd.PrintErrln("Error: Search failed. Please check the logs for details.")
				log.Error().Err(err).Msg("Catalogue search failed")
				return
			}
			if len(records) == 0 {
				cmd.Println("No matching rooms found.")
				return
			}
			renderCatalogueTable(records)
		},
	}
	cmd.Flags().StringVarP(&number, "number", "n", "", "Room number substring to search for")
	if err := cmd.MarkFlagRequired("number"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'number' flag as required")
	}
	return cmd
}

func catalogueInfoCmd() *cobra.Command {
	var remoteID string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cached information about a specific room",
		Run: func(cmd *cobra.Command, args []string) {
			showCatalogueInfo(cmd, remoteID)
		},
	}
	cmd.Flags().StringVarP(&remoteID, "id", "i", "", "Remote ID of the room")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func showCatalogueInfo(cmd *cobra.Command, remoteID string) {
	log.Info().Msgf("Fetching cached info for room with ID=%s", remoteID)

	repo := db.NewRoomCatalogueRepository(db.Db)
	rec, err := repo.GetByRemoteID(context.Background(), remoteID)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to fetch cached info for room with ID=%s", remoteID)
		cmd.PrintErrln("Error:", err)
		return
	}
	if rec == nil {
		log.Info().Msgf("No room found with ID=%s", remoteID)
		cmd.Println("No room found with the specified ID.")
		return
	}

	cmd.Println("Room Information:")
	cmd.Printf("Remote ID: %s\n", rec.RemoteID)
	cmd.Printf("Number: %s\n", rec.RoomNumber)
	cmd.Printf("Status: %s\n", statusLabel(rec.Status))
	cmd.Printf("Rent price: %d\n", rec.RentPrice)
	cmd.Printf("Data: %s\n", rec.Data)
}

func catalogueRefreshCmd() *cobra.Command {
	var numThreads int
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Update the catalogue with the latest data from the API",
		Run: func(cmd *cobra.Command, args []string) {
			refreshCatalogue(cmd, numThreads)
		},
	}
	cmd.Flags().IntVarP(&numThreads, "threads", "t", 5, "Number of threads to use for fetching room data")
	return cmd
}

func refreshCatalogue(cmd *cobra.Command, numThreads int) {
	log.Info().Msg("Refreshing the room catalogue...")

	if err := validation.ValidateThreadCount(numThreads); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	apiClient, _, err := newServices()
	if err != nil {
		cmd.PrintErrln("Error: Failed to set up the API client.")
		return
	}

	ctx := context.Background()
	rooms, err := apiClient.FetchRooms(ctx, "")
	if err != nil {
		printRequestError(cmd, err)
		return
	}
	if len(rooms) == 0 {
		cmd.Println("No rooms found on the server.")
		return
	}
	log.Info().Msgf("Found %d rooms on the server.", len(rooms))

	repo := db.NewRoomCatalogueRepository(db.Db)
	if err := repo.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to empty the room catalogue.")
		cmd.PrintErrln("Error: Failed to empty the room catalogue.")
		return
	}

	bar := progressbar.NewOptions(len(rooms),
		progressbar.OptionSetDescription("Refreshing catalogue..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)

	// Fetch concurrently, write serially: sqlite prefers a single writer.
	records, errs := pool.Map(ctx, rooms, numThreads, func(ctx context.Context, room client.Room) (db.RoomRecord, error) {
		defer func() { _ = bar.Add(1) }()

		full, raw, err := apiClient.FetchRoom(ctx, room.ID)
		if err != nil {
			log.Info().Msgf("Failed to fetch room details for room ID %s: %v", room.ID, err)
			return db.RoomRecord{}, err
		}
		return db.RoomRecord{
			RemoteID:   full.ID,
			RoomNumber: full.RoomNumber,
			Status:     full.Status,
			RentPrice:  full.RentPrice,
			Data:       raw,
		}, nil
	})
	_ = bar.Finish()

	stored := 0
	for _, rec := range records {
		if rec.RemoteID == "" {
			continue
		}
		if err := repo.Put(ctx, rec); err != nil {
			log.Error().Err(err).Msgf("Failed to store room %s in the catalogue", rec.RemoteID)
			errs = append(errs, err)
			continue
		}
		stored++
	}

	if len(errs) > 0 {
		cmd.Printf("Refreshing finished with %d failed rooms out of %d.\n", len(errs), len(rooms))
		return
	}
	cmd.Printf("Refreshing completed successfully. There are %d rooms in the catalogue.\n", stored)
}

func catalogueExportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the local catalogue as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			repo := db.NewRoomCatalogueRepository(db.Db)
			records, err := repo.List(context.Background())
			if err != nil {
				cmd.PrintErrln("Error: Unable to read the catalogue.")
				log.Error().Err(err).Msg("Failed to read catalogue for export")
				return
			}

			encoded, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				cmd.PrintErrln("Error: Failed to encode the catalogue.")
				return
			}
			if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
				cmd.PrintErrln("Error: Failed to write", outPath)
				log.Error().Err(err).Msgf("Failed to write export file %s", outPath)
				return
			}
			cmd.Printf("Exported %d rooms to %s.\n", len(records), strings.TrimSpace(outPath))
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "catalogue.json", "Destination file path")
	return cmd
}
