package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dayimpact/ecocoach/internal/factors"
)

//nolint:gochecknoglobals // Render styles, initialized once
var factorHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

// NewFactorsCmd creates the factors command, which prints the reference
// tables.
func NewFactorsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Browse the emission and water factor tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := factors.All()
			if err != nil {
				return err
			}

			selected := factors.Categories()
			if category != "" {
				cat := factors.Category(category)
				if !cat.Valid() {
					return fmt.Errorf("unknown category %q, expected one of %v", category, factors.Categories())
				}
				selected = []factors.Category{cat}
			}

			for _, cat := range selected {
				cmd.Println(factorHeaderStyle.Render(string(cat)))
				for _, f := range all[cat] {
					line := fmt.Sprintf("  %-24s %10.4f kg CO2e/%s", f.Item, f.CO2ePerUnit, f.Unit)
					if f.WaterPerUnit > 0 {
						line += fmt.Sprintf("  %10.2f L/%s", f.WaterPerUnit, f.Unit)
					}
					cmd.Println(line)
				}
				cmd.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "limit output to one category")
	return cmd
}
