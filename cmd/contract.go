package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func contractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Manage rental contracts",
	}

	cmd.AddCommand(
		contractListCmd(),
		contractGetCmd(),
		contractAddCmd(),
		contractUpdateCmd(),
		contractRemoveCmd(),
	)

	return cmd
}

func contractListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			contracts, err := apiClient.FetchContracts(context.Background(), status)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			if len(contracts) == 0 {
				cmd.Println("No contracts found.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Room", "Tenant", "Start", "End", "Rent Price", "Status"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)

			for _, c := range contracts {
				table.Append([]string{
					c.ID, c.RoomID, c.TenantID, c.StartDate, c.EndDate,
					fmt.Sprintf("%d", c.RentPrice), c.Status,
				})
			}
			table.Render()
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status [active, expired, terminated]")
	return cmd
}

func contractGetCmd() *cobra.Command {
	var contractID string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show information about a specific contract",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			contract, err := apiClient.FetchContract(context.Background(), contractID)
			if err != nil {
				printRequestError(cmd, err)
				return
			}

			cmd.Println("Contract Information:")
			cmd.Printf("ID: %s\n", contract.ID)
			cmd.Printf("Room: %s\n", contract.RoomID)
			cmd.Printf("Tenant: %s\n", contract.TenantID)
			cmd.Printf("Period: %s to %s\n", contract.StartDate, contract.EndDate)
			cmd.Printf("Deposit: %d\n", contract.Deposit)
			cmd.Printf("Rent price: %d\n", contract.RentPrice)
			cmd.Printf("Status: %s\n", contract.Status)
		},
	}
	cmd.Flags().StringVarP(&contractID, "id", "i", "", "ID of the contract")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func contractAddCmd() *cobra.Command {
	var input client.ContractInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new contract",
		Run: func(cmd *cobra.Command, args []string) {
			for field, value := range map[string]string{
				"room":       input.RoomID,
				"tenant":     input.TenantID,
				"start date": input.StartDate,
			} {
				if err := validation.ValidateNonEmptyString(field, value); err != nil {
					cmd.PrintErrln("Error:", err)
					return
				}
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

			contract, err := apiClient.CreateContract(context.Background(), input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Contract created with ID %s.\n", contract.ID)
		},
	}
	cmd.Flags().StringVar(&input.RoomID, "room", "", "ID of the room")
	cmd.Flags().StringVar(&input.TenantID, "tenant", "", "ID of the occupant signing the contract")
	cmd.Flags().StringVar(&input.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.EndDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&input.Deposit, "deposit", 0, "Deposit amount")
	cmd.Flags().Int64Var(&input.RentPrice, "price", 0, "Monthly rent price")
	return cmd
}

func contractUpdateCmd() *cobra.Command {
	var contractID string
	var input client.ContractInput
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing contract",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			contract, err := apiClient.UpdateContract(context.Background(), contractID, input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Contract %s updated.\n", contract.ID)
		},
	}
	cmd.Flags().StringVarP(&contractID, "id", "i", "", "ID of the contract")
	cmd.Flags().StringVar(&input.EndDate, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.Status, "status", "", "New status [active, expired, terminated]")
	cmd.Flags().Int64Var(&input.RentPrice, "price", 0, "New rent price")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func contractRemoveCmd() *cobra.Command {
	var contractID string
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a contract",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			if err := apiClient.DeleteContract(context.Background(), contractID); err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Println("Contract deleted.")
		},
	}
	cmd.Flags().StringVarP(&contractID, "id", "i", "", "ID of the contract")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}
