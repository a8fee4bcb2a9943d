package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/impact"
	"github.com/dayimpact/ecocoach/internal/recommend"
	"github.com/dayimpact/ecocoach/internal/report"
	"github.com/dayimpact/ecocoach/internal/storage"
)

// NewReportCmd creates the report command, which renders a daily or
// weekly report to stdout.
func NewReportCmd() *cobra.Command {
	var (
		date   string
		format string
		weekly bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a daily or weekly impact report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				day = parsed
			}
			renderFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			store, err := storage.Open(ctx, databasePath(cmd), logger)
			if err != nil {
				return err
			}
			defer store.Close()

			period := report.PeriodDaily
			var (
				totals  map[factors.Category]storage.CategoryTotal
				actions []storage.LoggedAction
				top     []storage.Contributor
			)
			if weekly {
				period = report.PeriodWeekly
				actions, err = store.ActionsInRange(ctx, day.AddDate(0, 0, -6), day)
				if err != nil {
					return err
				}
				totals = make(map[factors.Category]storage.CategoryTotal)
				for _, a := range actions {
					t := totals[a.Category]
					t.Category = a.Category
					t.TotalCO2eKg += a.CO2eKg
					t.TotalWaterL += a.WaterL
					t.ActionCount++
					totals[a.Category] = t
				}
				ranked := make([]storage.LoggedAction, len(actions))
				copy(ranked, actions)
				sort.SliceStable(ranked, func(i, j int) bool {
					return ranked[i].CO2eKg > ranked[j].CO2eKg
				})
				if len(ranked) > 5 {
					ranked = ranked[:5]
				}
				for _, a := range ranked {
					top = append(top, storage.Contributor{
						Category: a.Category, Item: a.Item, Amount: a.Amount,
						CO2eKg: a.CO2eKg, WaterL: a.WaterL,
					})
				}
			} else {
				totals, err = store.DailyTotals(ctx, day)
				if err != nil {
					return err
				}
				actions, err = store.ActionsByDate(ctx, day)
				if err != nil {
					return err
				}
				top, err = store.TopContributors(ctx, day, 5)
				if err != nil {
					return err
				}
			}

			streak, err := store.StreakDays(ctx, time.Now())
			if err != nil {
				return err
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
			recommendations := recommend.Get(records, 3)

			data := report.Build(day, period, totals, top, recommendations, streak, nil)
			content, err := report.Render(data, renderFormat)
			if err != nil {
				return err
			}
			cmd.Println(content)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "report day, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, markdown, html, json")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "render the weekly report ending on the given day")
	return cmd
}
