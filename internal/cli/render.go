package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avelisek/planwright/internal/metrics"
	"github.com/avelisek/planwright/internal/models"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Heading  lipgloss.Color
	Accent   lipgloss.Color
	Warning  lipgloss.Color
	Dim      lipgloss.Color
	colorize bool
}

// defaultTheme provides default colors. Styling is disabled when stdout is
// not a terminal so piped output stays plain.
var defaultTheme = Theme{
	Heading:  lipgloss.Color("#5FAFD7"), // light blue
	Accent:   lipgloss.Color("#00D787"), // green
	Warning:  lipgloss.Color("#FFAF00"), // amber
	Dim:      lipgloss.Color("#6C6C6C"), // dim gray
	colorize: term.IsTerminal(int(os.Stdout.Fd())),
}

func (t Theme) headingStyle() lipgloss.Style {
	if !t.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(t.Heading).Bold(true)
}

func (t Theme) accentStyle() lipgloss.Style {
	if !t.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(t.Accent)
}

func (t Theme) warningStyle() lipgloss.Style {
	if !t.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(t.Warning)
}

func (t Theme) dimStyle() lipgloss.Style {
	if !t.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(t.Dim)
}

func printWorkOrder(wo *models.WorkOrder) {
	th := defaultTheme

	title := wo.Title
	if title == "" {
		title = wo.WorkOrderNumber
	}
	fmt.Println(th.headingStyle().Render(fmt.Sprintf("Work order %s", wo.WorkOrderNumber)))
	fmt.Printf("  %s\n", title)
	fmt.Printf("  machine:  %s\n", wo.MachineID)
	fmt.Printf("  priority: %s   status: %s   type: %s\n", wo.Priority, wo.Status, wo.Type)

	if wo.AssignedTo != "" {
		fmt.Printf("  assigned: %s\n", th.accentStyle().Render(wo.AssignedTo))
	} else {
		fmt.Printf("  assigned: %s\n", th.warningStyle().Render("nobody available"))
	}

	if len(wo.Tasks) > 0 {
		fmt.Println("\n  Tasks:")
		for _, task := range wo.Tasks {
			fmt.Printf("    %d. %s (%d min)\n", task.Sequence.Int(), task.Title, task.EstimatedDurationMinutes.Int())
			if task.SafetyNotes != "" {
				fmt.Printf("       %s\n", th.warningStyle().Render("safety: "+task.SafetyNotes))
			}
		}
	}

	if len(wo.PartsUsed) > 0 {
		fmt.Println("\n  Parts:")
		for _, usage := range wo.PartsUsed {
			resolved := th.dimStyle().Render("(unresolved)")
			if usage.PartID != "" {
				resolved = th.dimStyle().Render(usage.PartID)
			}
			fmt.Printf("    %dx %s %s\n", usage.Quantity.Int(), usage.PartNumber, resolved)
		}
	}

	fmt.Printf("\n  %s\n", th.dimStyle().Render("id "+wo.ID))
}

func printTechnicians(techs []models.Technician) {
	th := defaultTheme

	fmt.Println(th.headingStyle().Render(fmt.Sprintf("Technicians (%d)", len(techs))))
	for _, t := range techs {
		avail := th.accentStyle().Render("available")
		if !t.IsAvailable {
			avail = th.warningStyle().Render("unavailable")
			if t.NextAvailableAt != nil {
				avail += th.dimStyle().Render(" until " + t.NextAvailableAt.UTC().Format(time.RFC3339))
			}
		}
		fmt.Printf("- %s [%s] %s\n", t.Name, t.Department, avail)
		if verbose {
			fmt.Printf("  skills: %s\n", strings.Join(t.Skills, ", "))
		}
	}
}

func printParts(parts []models.Part) {
	th := defaultTheme

	fmt.Println(th.headingStyle().Render(fmt.Sprintf("Parts (%d)", len(parts))))
	for _, p := range parts {
		qty := fmt.Sprintf("%d in stock", p.QuantityAvailable)
		if p.QuantityAvailable == 0 {
			qty = th.warningStyle().Render("out of stock")
		}
		fmt.Printf("- %s %s\n", p.PartNumber, qty)
		if verbose && p.Description != "" {
			fmt.Printf("  %s\n", th.dimStyle().Render(p.Description))
		}
	}
}

func printMetrics(snap metrics.Snapshot) {
	th := defaultTheme

	fmt.Println()
	fmt.Println(th.headingStyle().Render("Metrics"))
	printOp := func(name string, op *metrics.OperationSnapshot) {
		if op == nil {
			return
		}
		line := fmt.Sprintf("  %-13s %d calls, %dms total, %.1fms avg", name, op.Count, op.TotalTimeMs, op.AvgTimeMs)
		if op.InputTokens > 0 || op.OutputTokens > 0 {
			line += fmt.Sprintf(", tokens %d in / %d out", op.InputTokens, op.OutputTokens)
		}
		fmt.Println(line)
	}
	printOp("plan", snap.Plan)
	printOp("agent", snap.AgentInvoke)
	printOp("store query", snap.StoreQuery)
	printOp("store write", snap.StoreWrite)
}
