package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deductCmd = &cobra.Command{
	Use:   "deduct <part-number> <quantity>",
	Short: "Deduct spare-part stock after a repair",
	Long: `Deduct consumed quantity from a part's inventory.

The write is guarded by the part's version token; if the record changed
between read and write the deduction is refused and must be re-run.

Examples:
  planwright deduct TCP-HTR-4KW 1
  planwright deduct HYD-SEAL-KIT 2`,
	Args: cobra.ExactArgs(2),
	RunE: runDeduct,
}

func runDeduct(cmd *cobra.Command, args []string) error {
	partNumber := args[0]
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity must be a number, got %q", args[1])
	}

	ctx := context.Background()
	ok, err := dbClient.DeductPartQuantity(ctx, partNumber, quantity)
	if err != nil {
		return fmt.Errorf("deduct part: %w", err)
	}

	if !ok {
		// Nonzero exit so scripted callers can retry, via the normal
		// error path so the db and log file still close.
		return fmt.Errorf("deduction refused for %s: part not found, insufficient stock, or concurrent modification", partNumber)
	}

	part, err := dbClient.FindPartByNumber(ctx, partNumber)
	if err != nil {
		return fmt.Errorf("re-read part: %w", err)
	}
	if part != nil {
		fmt.Printf("Deducted %d from %s, %d remaining.\n", quantity, partNumber, part.QuantityAvailable)
	} else {
		fmt.Printf("Deducted %d from %s.\n", quantity, partNumber)
	}
	return nil
}
