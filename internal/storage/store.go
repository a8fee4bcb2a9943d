// Package storage persists action logs in SQLite. The store is the
// system of record for everything the user has logged; computed impacts
// are stored alongside the raw action so aggregates never need to
// re-resolve factors.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure-Go sqlite driver

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/impact"
)

// dateLayout is the canonical day format in the database.
const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS action_logs (
	id          TEXT PRIMARY KEY,
	date        TEXT NOT NULL,
	category    TEXT NOT NULL,
	item        TEXT NOT NULL,
	amount      REAL NOT NULL,
	subcategory TEXT NOT NULL DEFAULT '',
	time_of_day TEXT NOT NULL DEFAULT 'standard',
	location    TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	co2e_kg     REAL NOT NULL DEFAULT 0,
	water_l     REAL NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_action_logs_date ON action_logs(date);

CREATE TABLE IF NOT EXISTS user_preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// LoggedAction is one persisted action log row.
type LoggedAction struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Category    factors.Category `json:"category"`
	Item        string           `json:"item"`
	Amount      float64          `json:"amount"`
	Subcategory string           `json:"subcategory,omitempty"`
	TimeOfDay   impact.TimeOfDay `json:"time_of_day"`
	Location    string           `json:"location,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	CO2eKg      float64          `json:"co2e_kg"`
	WaterL      float64          `json:"water_l"`
	CreatedAt   time.Time        `json:"created_at"`
}

// CategoryTotal aggregates one day's impact within a category.
type CategoryTotal struct {
	Category    factors.Category `json:"category"`
	TotalCO2eKg float64          `json:"total_co2e_kg"`
	TotalWaterL float64          `json:"total_water_l"`
	ActionCount int              `json:"action_count"`
}

// DayTotal aggregates one day's impact across all categories.
type DayTotal struct {
	Date        string  `json:"date"`
	TotalCO2eKg float64 `json:"total_co2e_kg"`
	TotalWaterL float64 `json:"total_water_l"`
	ActionCount int     `json:"action_count"`
}

// Contributor is one high-impact row from a day's log.
type Contributor struct {
	Category factors.Category `json:"category"`
	Item     string           `json:"item"`
	Amount   float64          `json:"amount"`
	CO2eKg   float64          `json:"co2e_kg"`
	WaterL   float64          `json:"water_l"`
}

// Store is a SQLite-backed action log store. Safe for concurrent use;
// database/sql serializes access to the underlying connection pool.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the database at path and applies the
// schema. The parent directory is created when missing.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", ErrStoreOpen, dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreOpen, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply schema: %v", ErrStoreOpen, err)
	}

	logger.Debug().
		Str("component", "storage").
		Str("path", path).
		Msg("Action log store opened")

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert persists one computed action record for the given day and
// returns the stored row, id included.
func (s *Store) Insert(
	ctx context.Context,
	day time.Time,
	record impact.ActionRecord,
	location, notes string,
) (LoggedAction, error) {
	row := LoggedAction{
		ID:          ulid.Make().String(),
		Date:        day.Format(dateLayout),
		Category:    record.Category,
		Item:        record.Item,
		Amount:      record.Amount,
		Subcategory: record.Subcategory,
		TimeOfDay:   record.TimeOfDay,
		Location:    location,
		Notes:       notes,
		CO2eKg:      record.CO2eKg,
		WaterL:      record.WaterL,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO action_logs
		(id, date, category, item, amount, subcategory, time_of_day, location, notes, co2e_kg, water_l, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Date, string(row.Category), row.Item, row.Amount, row.Subcategory,
		string(row.TimeOfDay), row.Location, row.Notes, row.CO2eKg, row.WaterL,
		row.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return LoggedAction{}, fmt.Errorf("insert action log: %w", err)
	}

	s.logger.Debug().
		Str("component", "storage").
		Str("operation", "insert").
		Str("id", row.ID).
		Str("date", row.Date).
		Str("item", row.Item).
		Msg("Action logged")

	return row, nil
}

// ActionsByDate returns every action logged on the given day, newest
// first.
func (s *Store) ActionsByDate(ctx context.Context, day time.Time) ([]LoggedAction, error) {
	return s.queryActions(ctx, `
		SELECT id, date, category, item, amount, subcategory, time_of_day,
		       location, notes, co2e_kg, water_l, created_at
		FROM action_logs
		WHERE date = ?
		ORDER BY created_at DESC`,
		day.Format(dateLayout),
	)
}

// ActionsInRange returns every action with start <= date <= end, newest
// day first.
func (s *Store) ActionsInRange(ctx context.Context, start, end time.Time) ([]LoggedAction, error) {
	return s.queryActions(ctx, `
		SELECT id, date, category, item, amount, subcategory, time_of_day,
		       location, notes, co2e_kg, water_l, created_at
		FROM action_logs
		WHERE date BETWEEN ? AND ?
		ORDER BY date DESC, created_at DESC`,
		start.Format(dateLayout), end.Format(dateLayout),
	)
}

func (s *Store) queryActions(ctx context.Context, query string, args ...any) ([]LoggedAction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query action logs: %w", err)
	}
	defer rows.Close()

	var out []LoggedAction
	for rows.Next() {
		var (
			a         LoggedAction
			category  string
			timeOfDay string
			createdAt string
		)
		if err := rows.Scan(
			&a.ID, &a.Date, &category, &a.Item, &a.Amount, &a.Subcategory,
			&timeOfDay, &a.Location, &a.Notes, &a.CO2eKg, &a.WaterL, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan action log: %w", err)
		}
		a.Category = factors.Category(category)
		a.TimeOfDay = impact.TimeOfDay(timeOfDay)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			a.CreatedAt = ts
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DailyTotals aggregates the given day's impact per category.
func (s *Store) DailyTotals(ctx context.Context, day time.Time) (map[factors.Category]CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(co2e_kg), SUM(water_l), COUNT(*)
		FROM action_logs
		WHERE date = ?
		GROUP BY category`,
		day.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[factors.Category]CategoryTotal)
	for rows.Next() {
		var (
			category string
			t        CategoryTotal
		)
		if err := rows.Scan(&category, &t.TotalCO2eKg, &t.TotalWaterL, &t.ActionCount); err != nil {
			return nil, fmt.Errorf("scan daily totals: %w", err)
		}
		t.Category = factors.Category(category)
		totals[t.Category] = t
	}
	return totals, rows.Err()
}

// WeeklyTotals returns per-day totals for the 7 days ending at endDay,
// oldest first. Days with no actions are absent.
func (s *Store) WeeklyTotals(ctx context.Context, endDay time.Time) ([]DayTotal, error) {
	startDay := endDay.AddDate(0, 0, -6)

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, SUM(co2e_kg), SUM(water_l), COUNT(*)
		FROM action_logs
		WHERE date BETWEEN ? AND ?
		GROUP BY date
		ORDER BY date ASC`,
		startDay.Format(dateLayout), endDay.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query weekly totals: %w", err)
	}
	defer rows.Close()

	var out []DayTotal
	for rows.Next() {
		var t DayTotal
		if err := rows.Scan(&t.Date, &t.TotalCO2eKg, &t.TotalWaterL, &t.ActionCount); err != nil {
			return nil, fmt.Errorf("scan weekly totals: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TopContributors returns the highest-impact rows of the day by co2e,
// up to limit.
func (s *Store) TopContributors(ctx context.Context, day time.Time, limit int) ([]Contributor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, item, amount, co2e_kg, water_l
		FROM action_logs
		WHERE date = ?
		ORDER BY co2e_kg DESC
		LIMIT ?`,
		day.Format(dateLayout), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top contributors: %w", err)
	}
	defer rows.Close()

	var out []Contributor
	for rows.Next() {
		var (
			category string
			c        Contributor
		)
		if err := rows.Scan(&category, &c.Item, &c.Amount, &c.CO2eKg, &c.WaterL); err != nil {
			return nil, fmt.Errorf("scan top contributors: %w", err)
		}
		c.Category = factors.Category(category)
		out = append(out, c)
	}
	return out, rows.Err()
}

// StreakDays counts consecutive days with at least one logged action,
// ending today. A day without logs breaks the streak; no log today
// means a streak of zero.
func (s *Store) StreakDays(ctx context.Context, today time.Time) (int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT date
		FROM action_logs
		ORDER BY date DESC`,
	)
	if err != nil {
		return 0, fmt.Errorf("query streak: %w", err)
	}
	defer rows.Close()

	expected := today.Format(dateLayout)
	streak := 0
	cursor := today
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return 0, fmt.Errorf("scan streak: %w", err)
		}
		if day == expected {
			streak++
			cursor = cursor.AddDate(0, 0, -1)
			expected = cursor.Format(dateLayout)
		} else if day < expected {
			break
		}
	}
	return streak, rows.Err()
}

// Delete removes one action log by id. Returns ErrNotFound when no row
// matches.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM action_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete action log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete action log: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id=%q", ErrNotFound, id)
	}
	return nil
}

// ClearAll deletes every action log and returns the number removed.
func (s *Store) ClearAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM action_logs`)
	if err != nil {
		return 0, fmt.Errorf("clear action logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear action logs: %w", err)
	}

	s.logger.Info().
		Str("component", "storage").
		Str("operation", "clear_all").
		Int64("deleted", n).
		Msg("Action logs cleared")

	return n, nil
}

// SetPreference upserts one user preference.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

// Preference returns the stored value for key, or "" when unset.
func (s *Store) Preference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM user_preferences WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, nil
}
