package cli

import (
	"context"
	"fmt"

	"github.com/avelisek/planwright/internal/models"
	"github.com/spf13/cobra"
)

var listSkills []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List technicians or parts",
	Long: `List reference data held in the store.

Subcommands:
  technicians  List technicians (default)
  parts        List spare parts

Examples:
  planwright list
  planwright list technicians --skills hydraulics,mechanical
  planwright list parts`,
	RunE: runListTechnicians,
}

var listTechniciansCmd = &cobra.Command{
	Use:   "technicians",
	Short: "List technicians",
	RunE:  runListTechnicians,
}

var listPartsCmd = &cobra.Command{
	Use:   "parts",
	Short: "List spare parts",
	RunE:  runListParts,
}

func init() {
	listCmd.Flags().StringSliceVarP(&listSkills, "skills", "s", nil, "filter by skills")
	listTechniciansCmd.Flags().StringSliceVarP(&listSkills, "skills", "s", nil, "filter by skills")

	listCmd.AddCommand(listTechniciansCmd)
	listCmd.AddCommand(listPartsCmd)
}

func runListTechnicians(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	techs, err := fetchTechnicians(ctx)
	if err != nil {
		return fmt.Errorf("list technicians: %w", err)
	}

	if len(techs) == 0 {
		fmt.Println("No technicians found.")
		return nil
	}

	printTechnicians(techs)
	return nil
}

func fetchTechnicians(ctx context.Context) ([]models.Technician, error) {
	if len(listSkills) > 0 {
		return dbClient.TechniciansBySkills(ctx, listSkills)
	}
	return dbClient.ListTechnicians(ctx)
}

func runListParts(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	parts, err := dbClient.ListParts(ctx)
	if err != nil {
		return fmt.Errorf("list parts: %w", err)
	}

	if len(parts) == 0 {
		fmt.Println("No parts found.")
		return nil
	}

	printParts(parts)
	return nil
}
