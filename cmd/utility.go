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

func utilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "utility",
		Short: "Manage utilities",
	}

	cmd.AddCommand(
		utilityListCmd(),
		utilityGetCmd(),
		utilityAddCmd(),
		utilityUpdateCmd(),
		utilityRemoveCmd(),
	)

	return cmd
}

func utilityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List utilities",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			utilities, err := apiClient.FetchUtilities(context.Background())
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			if len(utilities) == 0 {
				cmd.Println("No utilities found.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Name", "Price/Unit", "Unit", "ID"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)

			for _, u := range utilities {
				table.Append([]string{u.Name, fmt.Sprintf("%d", u.PricePerUnit), u.Unit, u.ID})
			}
			table.Render()
		},
	}
}

func utilityGetCmd() *cobra.Command {
	var utilityID string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show information about a specific utility",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			utility, err := apiClient.FetchUtility(context.Background(), utilityID)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("ID: %s\n", utility.ID)
			cmd.Printf("Name: %s\n", utility.Name)
			cmd.Printf("Price per unit: %d (%s)\n", utility.PricePerUnit, utility.Unit)
		},
	}
	cmd.Flags().StringVarP(&utilityID, "id", "i", "", "ID of the utility")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func utilityAddCmd() *cobra.Command {
	var input client.UtilityInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new utility",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("name", input.Name); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidatePrice("price per unit", input.PricePerUnit); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			utility, err := apiClient.CreateUtility(context.Background(), input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Utility %s created with ID %s.\n", utility.Name, utility.ID)
		},
	}
	cmd.Flags().StringVarP(&input.Name, "name", "n", "", "Utility name")
	cmd.Flags().Int64VarP(&input.PricePerUnit, "price", "p", 0, "Price per unit")
	cmd.Flags().StringVarP(&input.Unit, "unit", "u", "", "Billing unit (e.g. kWh)")
	return cmd
}

func utilityUpdateCmd() *cobra.Command {
	var utilityID string
	var input client.UtilityInput
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing utility",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			utility, err := apiClient.UpdateUtility(context.Background(), utilityID, input)
			if err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Printf("Utility %s updated.\n", utility.Name)
		},
	}
	cmd.Flags().StringVarP(&utilityID, "id", "i", "", "ID of the utility")
	cmd.Flags().StringVarP(&input.Name, "name", "n", "", "New name")
	cmd.Flags().Int64VarP(&input.PricePerUnit, "price", "p", 0, "New price per unit")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func utilityRemoveCmd() *cobra.Command {
	var utilityID string
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a utility",
		Run: func(cmd *cobra.Command, args []string) {
			apiClient, _, err := newServices()
			if err != nil {
				cmd.PrintErrln("Error: Failed to set up the API client.")
				return
			}

			if err := apiClient.DeleteUtility(context.Background(), utilityID); err != nil {
				printRequestError(cmd, err)
				return
			}
			cmd.Println("Utility deleted.")
		},
	}
	cmd.Flags().StringVarP(&utilityID, "id", "i", "", "ID of the utility")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}
