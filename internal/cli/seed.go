package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/avelisek/planwright/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML shape the seed command reads.
type seedFile struct {
	Technicians []models.Technician `yaml:"technicians"`
	Parts       []models.Part       `yaml:"parts"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load technicians and parts from a YAML file",
	Long: `Load plant reference data (technicians and spare parts) into the store.

The file holds two top-level lists:

  technicians:
    - name: Mira Kovac
      department: curing
      skills: [tire_curing_press, temperature_control]
      isAvailable: true
  parts:
    - partNumber: TCP-HTR-4KW
      description: 4kW cartridge heater
      quantityAvailable: 6

Records are upserted by id, so re-running a seed file is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file %s: %w", args[0], err)
	}

	ctx := context.Background()
	for i := range seed.Technicians {
		if err := dbClient.CreateTechnician(ctx, &seed.Technicians[i]); err != nil {
			return fmt.Errorf("seed technician %q: %w", seed.Technicians[i].Name, err)
		}
	}
	for i := range seed.Parts {
		if err := dbClient.CreatePart(ctx, &seed.Parts[i]); err != nil {
			return fmt.Errorf("seed part %q: %w", seed.Parts[i].PartNumber, err)
		}
	}

	fmt.Printf("Seeded %d technicians and %d parts.\n", len(seed.Technicians), len(seed.Parts))
	return nil
}
