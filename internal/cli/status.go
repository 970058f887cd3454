package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/mealwiz/internal/session"
	"github.com/danieljhkim/mealwiz/internal/wizard"
)

var (
	statusColorGreen  = lipgloss.Color("#22c55e")
	statusColorYellow = lipgloss.Color("#eab308")
	statusColorBlue   = lipgloss.Color("#3b82f6")
	statusColorDim    = lipgloss.Color("#6b7280")
	statusColorWhite  = lipgloss.Color("#f9fafb")
)

var (
	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(statusColorBlue).
				Padding(0, 1)

	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(statusColorWhite)

	statusDoneStyle = lipgloss.NewStyle().
			Foreground(statusColorGreen)

	statusCurrentStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(statusColorYellow)

	statusDimStyle = lipgloss.NewStyle().
			Foreground(statusColorDim)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show wizard progress",
	Long:  `Display the session phase, the current step and which steps are finished.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, release, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer release()

		result, err := eng.Status(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderStatus(result))
		return nil
	},
}

// renderStatus draws the step overview panel.
func renderStatus(result *wizard.StatusResult) string {
	var b strings.Builder

	b.WriteString(statusTitleStyle.Render("Meal plan wizard"))
	b.WriteString("\n")
	b.WriteString(statusDimStyle.Render(fmt.Sprintf("phase: %s", result.Phase)))
	b.WriteString("\n\n")

	for _, st := range result.Steps {
		line := fmt.Sprintf("%d  %s", st.Number, st.Title)
		switch {
		case st.Current:
			b.WriteString(statusCurrentStyle.Render("▸ " + line))
		case st.Completed:
			b.WriteString(statusDoneStyle.Render("✓ " + line))
		default:
			b.WriteString(statusDimStyle.Render("· " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusDimStyle.Render(fmt.Sprintf("%s of %d set",
		PrintCount(len(result.SetSlots), "slot", "slots"), len(session.Slots()))))
	if result.Phase != session.PhaseCompleted && result.NextStep != 0 {
		b.WriteString("\n")
		b.WriteString(statusDimStyle.Render(fmt.Sprintf("next: step %d", result.NextStep)))
	}

	return statusPanelStyle.Render(b.String())
}
