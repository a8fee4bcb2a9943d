package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/impact"
	"github.com/dayimpact/ecocoach/internal/storage"
)

// NewLogCmd creates the log command, which records one action and
// prints its computed impact.
func NewLogCmd() *cobra.Command {
	var (
		category    string
		item        string
		amount      float64
		subcategory string
		timeOfDay   string
		location    string
		notes       string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log an action and compute its impact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := factors.Category(category)
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q, expected one of %v", category, factors.Categories())
			}
			if amount <= 0 {
				return fmt.Errorf("amount must be positive, got %g", amount)
			}
			tod := impact.TimeOfDay(timeOfDay)
			if !tod.Valid() {
				return fmt.Errorf("unknown time of day %q", timeOfDay)
			}

			day := time.Now()
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				day = parsed
			}

			record, err := impact.NewActionRecord(cat, item, amount, subcategory, tod)
			if err != nil {
				return err
			}

			store, err := storage.Open(cmd.Context(), databasePath(cmd), logger)
			if err != nil {
				return err
			}
			defer store.Close()

			logged, err := store.Insert(cmd.Context(), day, record, location, notes)
			if err != nil {
				return err
			}

			cmd.Printf("Logged %s x%g on %s\n", logged.Item, logged.Amount, logged.Date)
			cmd.Printf("  CO2e: %.4f kg\n", logged.CO2eKg)
			if logged.WaterL > 0 {
				cmd.Printf("  Water: %.2f L\n", logged.WaterL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "action category: mobility, purchase, home_energy")
	cmd.Flags().StringVar(&item, "item", "", "factor item, e.g. taxi_ice, beef_meal, electricity_kwh")
	cmd.Flags().Float64Var(&amount, "amount", 0, "quantity in the item's unit (km, servings, kWh, ...)")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "purchase subcategory hint, e.g. food, fashion")
	cmd.Flags().StringVar(&timeOfDay, "time-of-day", "", "standard, peak, or off_peak (home energy only)")
	cmd.Flags().StringVar(&location, "location", "", "optional location note")
	cmd.Flags().StringVar(&notes, "notes", "", "optional free-form note")
	cmd.Flags().StringVar(&date, "date", "", "day to log against, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
