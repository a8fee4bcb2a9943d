package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayimpact/ecocoach/internal/impact"
	"github.com/dayimpact/ecocoach/internal/recommend"
	"github.com/dayimpact/ecocoach/internal/report"
	"github.com/dayimpact/ecocoach/internal/storage"
)

const coachRecommendationCount = 3

// NewCoachCmd creates the coach command, which prints the daily summary
// and ranked recommendations.
func NewCoachCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Show today's impact summary and recommendations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				day = parsed
			}
			ctx := cmd.Context()

			store, err := storage.Open(ctx, databasePath(cmd), logger)
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.DailyTotals(ctx, day)
			if err != nil {
				return err
			}
			top, err := store.TopContributors(ctx, day, coachRecommendationCount)
			if err != nil {
				return err
			}
			actions, err := store.ActionsByDate(ctx, day)
			if err != nil {
				return err
			}
			streak, err := store.StreakDays(ctx, time.Now())
			if err != nil {
				return err
			}

			var totalCO2e, totalWater float64
			for _, t := range totals {
				totalCO2e += t.TotalCO2eKg
				totalWater += t.TotalWaterL
			}

			records := make([]impact.ActionRecord, 0, len(actions))
			for _, a := range actions {
				records = append(records, impact.ActionRecord{
					Category: a.Category,
					Item:     a.Item,
					Amount:   a.Amount,
					CO2eKg:   a.CO2eKg,
					WaterL:   a.WaterL,
				})
			}
			recommendations := recommend.Get(records, coachRecommendationCount)

			cmd.Println(report.DailySummary(totalCO2e, totalWater, top))
			if streak > 0 {
				cmd.Printf("Current streak: %d days\n", streak)
			}
			cmd.Println()
			cmd.Println("Recommended next steps:")
			for _, rec := range recommendations {
				cmd.Printf("%d. %s [%s]\n", rec.Priority, rec.Action, rec.Difficulty)
				cmd.Printf("   Saves ~%.2f kg CO2e. %s\n", rec.EstimatedSavingsCO2eKg, rec.Rationale)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to coach on, YYYY-MM-DD (default today)")
	return cmd
}
