package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avelisek/planwright/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	planFaultType string
	planMachine   string
	planSeverity  string
	planNotes     string
	planJSON      bool
)

var planCmd = &cobra.Command{
	Use:   "plan [fault-file]",
	Short: "Plan a work order for a diagnosed fault",
	Long: `Plan a repair work order for a diagnosed equipment fault.

The fault is read from a YAML or JSON file, or described inline with
flags. The resulting work order is persisted and printed.

Examples:
  planwright plan fault.yaml
  planwright plan fault.json --json
  planwright plan --fault-type curing_temperature_excessive --machine TCP-07
  planwright plan --fault-type hydraulic_pressure_loss --machine PRESS-3 --severity high`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFaultType, "fault-type", "t", "", "fault type (when no file is given)")
	planCmd.Flags().StringVarP(&planMachine, "machine", "m", "", "machine id (when no file is given)")
	planCmd.Flags().StringVarP(&planSeverity, "severity", "s", "", "fault severity")
	planCmd.Flags().StringVar(&planNotes, "notes", "", "diagnostic notes for the agent")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the work order as JSON")
}

func runPlan(cmd *cobra.Command, args []string) error {
	fault, err := loadFault(args)
	if err != nil {
		return err
	}

	p, err := getPlanner()
	if err != nil {
		return err
	}

	ctx := context.Background()
	wo, err := p.Plan(ctx, fault)
	if err != nil {
		return fmt.Errorf("plan work order: %w", err)
	}

	if planJSON {
		out, err := json.MarshalIndent(wo, "", "  ")
		if err != nil {
			return fmt.Errorf("encode work order: %w", err)
		}
		fmt.Println(string(out))
	} else {
		printWorkOrder(wo)
	}

	if verbose {
		printMetrics(collector.Snapshot())
	}

	return nil
}

// loadFault builds the fault from the file argument or from flags.
func loadFault(args []string) (*models.Fault, error) {
	if len(args) == 1 {
		return readFaultFile(args[0])
	}

	if planFaultType == "" || planMachine == "" {
		return nil, fmt.Errorf("either a fault file or both --fault-type and --machine are required")
	}
	return &models.Fault{
		ID:        uuid.NewString(),
		FaultType: planFaultType,
		MachineID: planMachine,
		Severity:  planSeverity,
		Notes:     planNotes,
		Timestamp: time.Now().UTC(),
	}, nil
}

func readFaultFile(path string) (*models.Fault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fault file: %w", err)
	}

	var fault models.Fault
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &fault)
	default:
		err = yaml.Unmarshal(data, &fault)
	}
	if err != nil {
		return nil, fmt.Errorf("parse fault file %s: %w", path, err)
	}

	if fault.ID == "" {
		fault.ID = uuid.NewString()
	}
	return &fault, nil
}
