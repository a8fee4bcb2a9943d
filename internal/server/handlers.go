package server

import (
	"errors"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dayimpact/ecocoach/internal/chat"
	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/impact"
	"github.com/dayimpact/ecocoach/internal/recommend"
	"github.com/dayimpact/ecocoach/internal/report"
	"github.com/dayimpact/ecocoach/internal/storage"
)

const (
	dateLayout = "2006-01-02"

	maxDailyRecommendations = 3
	topContributorLimit     = 3
	reportContributorLimit  = 5
)

type actionCreateRequest struct {
	Category    factors.Category `json:"category" binding:"required"`
	Item        string           `json:"item" binding:"required"`
	Amount      float64          `json:"amount" binding:"required"`
	Subcategory string           `json:"subcategory"`
	TimeOfDay   impact.TimeOfDay `json:"time_of_day"`
	Location    string           `json:"location"`
	Notes       string           `json:"notes"`
	Date        string           `json:"date"`
}

type bulkCreateRequest struct {
	Actions []actionCreateRequest `json:"actions" binding:"required"`
}

type impactSummary struct {
	Date                string                                        `json:"date"`
	TotalCO2eKg         float64                                       `json:"total_co2e_kg"`
	TotalWaterL         float64                                       `json:"total_water_l"`
	BreakdownByCategory map[factors.Category]report.CategoryBreakdown `json:"breakdown_by_category"`
	TopContributors     []storage.Contributor                         `json:"top_contributors"`
	ActionCount         int                                           `json:"action_count"`
}

type weeklyTrend struct {
	Dates         []string           `json:"dates"`
	CO2eValues    []float64          `json:"co2e_values"`
	WaterValues   []float64          `json:"water_values"`
	DailyAverages map[string]float64 `json:"daily_averages"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"version":  apiVersion,
		"database": "sqlite",
	})
}

// queryDate reads a date query parameter, defaulting to today.
func queryDate(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(dateLayout, raw)
}

func (s *Server) insertAction(c *gin.Context, req actionCreateRequest) (storage.LoggedAction, bool) {
	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return storage.LoggedAction{}, false
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return storage.LoggedAction{}, false
	}
	if !req.TimeOfDay.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown time_of_day"})
		return storage.LoggedAction{}, false
	}

	day := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return storage.LoggedAction{}, false
		}
		day = parsed
	}

	record, err := impact.NewActionRecord(req.Category, req.Item, req.Amount, req.Subcategory, req.TimeOfDay)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, factors.ErrFactorNotFound) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return storage.LoggedAction{}, false
	}

	logged, err := s.store.Insert(c.Request.Context(), day, record, req.Location, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return storage.LoggedAction{}, false
	}
	return logged, true
}

func (s *Server) createAction(c *gin.Context) {
	var req actionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logged, ok := s.insertAction(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, logged)
}

// createActionsBulk logs several actions at once. Invalid entries are
// skipped rather than failing the batch.
func (s *Server) createActionsBulk(c *gin.Context) {
	var req bulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := make([]storage.LoggedAction, 0, len(req.Actions))
	for _, action := range req.Actions {
		if !action.Category.Valid() || action.Amount <= 0 || !action.TimeOfDay.Valid() {
			continue
		}
		day := time.Now()
		if action.Date != "" {
			parsed, err := time.Parse(dateLayout, action.Date)
			if err != nil {
				continue
			}
			day = parsed
		}
		record, err := impact.NewActionRecord(action.Category, action.Item, action.Amount, action.Subcategory, action.TimeOfDay)
		if err != nil {
			continue
		}
		logged, err := s.store.Insert(c.Request.Context(), day, record, action.Location, action.Notes)
		if err != nil {
			continue
		}
		results = append(results, logged)
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) listActions(c *gin.Context) {
	startRaw, endRaw := c.Query("start_date"), c.Query("end_date")

	var (
		actions []storage.LoggedAction
		err     error
	)
	if startRaw != "" && endRaw != "" {
		var start, end time.Time
		if start, err = time.Parse(dateLayout, startRaw); err == nil {
			end, err = time.Parse(dateLayout, endRaw)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range, expected YYYY-MM-DD"})
			return
		}
		actions, err = s.store.ActionsInRange(c.Request.Context(), start, end)
	} else {
		day, parseErr := queryDate(c, "date")
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		actions, err = s.store.ActionsByDate(c.Request.Context(), day)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if actions == nil {
		actions = []storage.LoggedAction{}
	}
	c.JSON(http.StatusOK, actions)
}

func (s *Server) deleteAction(c *gin.Context) {
	err := s.store.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Action deleted successfully"})
}

func (s *Server) buildImpactSummary(c *gin.Context, day time.Time) (impactSummary, bool) {
	ctx := c.Request.Context()

	totals, err := s.store.DailyTotals(ctx, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return impactSummary{}, false
	}
	top, err := s.store.TopContributors(ctx, day, topContributorLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return impactSummary{}, false
	}
	if top == nil {
		top = []storage.Contributor{}
	}

	summary := impactSummary{
		Date:                day.Format(dateLayout),
		BreakdownByCategory: make(map[factors.Category]report.CategoryBreakdown, len(totals)),
		TopContributors:     top,
	}
	for _, t := range totals {
		summary.TotalCO2eKg += t.TotalCO2eKg
		summary.TotalWaterL += t.TotalWaterL
		summary.ActionCount += t.ActionCount
	}
	for category, t := range totals {
		pct := 0.0
		if summary.TotalCO2eKg > 0 {
			pct = roundTo(t.TotalCO2eKg/summary.TotalCO2eKg*100, 1)
		}
		summary.BreakdownByCategory[category] = report.CategoryBreakdown{
			CO2eKg:      t.TotalCO2eKg,
			WaterL:      t.TotalWaterL,
			ActionCount: t.ActionCount,
			Percentage:  pct,
		}
	}
	summary.TotalCO2eKg = roundTo(summary.TotalCO2eKg, 4)
	summary.TotalWaterL = roundTo(summary.TotalWaterL, 2)
	return summary, true
}

func (s *Server) dailyImpact(c *gin.Context) {
	day, err := queryDate(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	summary, ok := s.buildImpactSummary(c, day)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, summary)
}

// weeklyTrend zero-fills missing days so charts always get 7 points.
// Daily averages exclude days without logs.
func (s *Server) weeklyTrend(c *gin.Context) {
	endDay, err := queryDate(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	weekly, err := s.store.WeeklyTotals(c.Request.Context(), endDay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	byDate := make(map[string]storage.DayTotal, len(weekly))
	for _, day := range weekly {
		byDate[day.Date] = day
	}

	trend := weeklyTrend{
		Dates:         make([]string, 0, 7),
		CO2eValues:    make([]float64, 0, 7),
		WaterValues:   make([]float64, 0, 7),
		DailyAverages: map[string]float64{"co2e_kg": 0, "water_l": 0},
	}

	startDay := endDay.AddDate(0, 0, -6)
	var co2eSum, waterSum float64
	var co2eDays, waterDays int
	for i := 0; i < 7; i++ {
		date := startDay.AddDate(0, 0, i).Format(dateLayout)
		trend.Dates = append(trend.Dates, date)

		day, ok := byDate[date]
		co2e, water := 0.0, 0.0
		if ok {
			co2e = roundTo(day.TotalCO2eKg, 4)
			water = roundTo(day.TotalWaterL, 2)
		}
		trend.CO2eValues = append(trend.CO2eValues, co2e)
		trend.WaterValues = append(trend.WaterValues, water)
		if co2e > 0 {
			co2eSum += co2e
			co2eDays++
		}
		if water > 0 {
			waterSum += water
			waterDays++
		}
	}
	if co2eDays > 0 {
		trend.DailyAverages["co2e_kg"] = roundTo(co2eSum/float64(co2eDays), 2)
	}
	if waterDays > 0 {
		trend.DailyAverages["water_l"] = roundTo(waterSum/float64(waterDays), 2)
	}

	c.JSON(http.StatusOK, trend)
}

func (s *Server) dailyCoaching(c *gin.Context) {
	day, err := queryDate(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	ctx := c.Request.Context()

	actions, err := s.store.ActionsByDate(ctx, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	summary, ok := s.buildImpactSummary(c, day)
	if !ok {
		return
	}
	streak, err := s.store.StreakDays(ctx, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recommendations := recommend.Get(toRecords(actions), maxDailyRecommendations)
	text := report.DailySummary(summary.TotalCO2eKg, summary.TotalWaterL, summary.TopContributors)

	c.JSON(http.StatusOK, gin.H{
		"date":            day.Format(dateLayout),
		"summary":         text,
		"impact_summary":  summary,
		"recommendations": recommendations,
		"streak_days":     streak,
	})
}

func (s *Server) weeklyInsight(c *gin.Context) {
	weekly, err := s.store.WeeklyTotals(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": report.WeeklyInsight(weekly)})
}

func (s *Server) listFactors(c *gin.Context) {
	all, err := factors.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}

func (s *Server) listFactorsByCategory(c *gin.Context) {
	category := factors.Category(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	all, err := factors.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	list := all[category]
	if list == nil {
		list = []factors.Factor{}
	}
	c.JSON(http.StatusOK, list)
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// chatMessage parses a free-form message, logs every recognized action
// with its impact, and replies with an analysis. Actions whose item has
// no factor entry are dropped silently.
func (s *Server) chatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := s.sessions.GetOrCreate(req.SessionID)
	if req.Message == "" {
		c.JSON(http.StatusOK, gin.H{
			"session_id": session.ID,
			"response":   "메시지를 입력해주세요.",
			"actions":    []chat.ParsedAction{},
			"impacts":    []storage.LoggedAction{},
		})
		return
	}
	session.AddMessage("user", req.Message)

	parsed := chat.ParseMessage(req.Message)

	saved := make([]chat.ParsedAction, 0, len(parsed))
	impacts := make([]storage.LoggedAction, 0, len(parsed))
	records := make([]impact.ActionRecord, 0, len(parsed))
	for _, action := range parsed {
		record, err := impact.NewActionRecord(action.Category, action.Item, action.Amount, "", "")
		if err != nil {
			continue
		}
		logged, err := s.store.Insert(c.Request.Context(), time.Now(), record, "", "")
		if err != nil {
			continue
		}
		session.AddAction(action, record)
		saved = append(saved, action)
		impacts = append(impacts, logged)
		records = append(records, record)
	}

	reply := chat.GenerateResponse(saved, records)
	session.AddMessage("assistant", reply)

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"response":   reply,
		"actions":    saved,
		"impacts":    impacts,
	})
}

func (s *Server) chatSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": chat.Suggestions()})
}

func (s *Server) dailyReport(c *gin.Context) {
	day, err := queryDate(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	format, err := report.ParseFormat(c.DefaultQuery("format", "text"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	totals, err := s.store.DailyTotals(ctx, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	top, err := s.store.TopContributors(ctx, day, reportContributorLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	actions, err := s.store.ActionsByDate(ctx, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	streak, err := s.store.StreakDays(ctx, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recommendations := recommend.Get(toRecords(actions), maxDailyRecommendations)
	data := report.Build(day, report.PeriodDaily, totals, top, recommendations, streak, nil)

	content, err := report.Render(data, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"format":       string(format),
		"content_type": format.ContentType(),
		"report":       content,
		"date":         day.Format(dateLayout),
	})
}

func (s *Server) weeklyReport(c *gin.Context) {
	endDay, err := queryDate(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}
	format, err := report.ParseFormat(c.DefaultQuery("format", "text"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	startDay := endDay.AddDate(0, 0, -6)

	actions, err := s.store.ActionsInRange(ctx, startDay, endDay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	streak, err := s.store.StreakDays(ctx, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Category totals over the whole week.
	totals := make(map[factors.Category]storage.CategoryTotal)
	for _, a := range actions {
		t := totals[a.Category]
		t.Category = a.Category
		t.TotalCO2eKg += a.CO2eKg
		t.TotalWaterL += a.WaterL
		t.ActionCount++
		totals[a.Category] = t
	}

	// Top contributors are the single highest-impact rows of the week.
	top := topContributorsFromActions(actions, reportContributorLimit)

	recommendations := recommend.Get(toRecords(actions), maxDailyRecommendations)
	data := report.Build(endDay, report.PeriodWeekly, totals, top, recommendations, streak, nil)

	content, err := report.Render(data, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"format":       string(format),
		"content_type": format.ContentType(),
		"report":       content,
		"period":       startDay.Format(dateLayout) + " to " + endDay.Format(dateLayout),
	})
}

func toRecords(actions []storage.LoggedAction) []impact.ActionRecord {
	records := make([]impact.ActionRecord, 0, len(actions))
	for _, a := range actions {
		records = append(records, impact.ActionRecord{
			Category:    a.Category,
			Item:        a.Item,
			Amount:      a.Amount,
			Subcategory: a.Subcategory,
			TimeOfDay:   a.TimeOfDay,
			CO2eKg:      a.CO2eKg,
			WaterL:      a.WaterL,
		})
	}
	return records
}

func topContributorsFromActions(actions []storage.LoggedAction, limit int) []storage.Contributor {
	sorted := make([]storage.LoggedAction, len(actions))
	copy(sorted, actions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CO2eKg > sorted[j].CO2eKg
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]storage.Contributor, 0, len(sorted))
	for _, a := range sorted {
		out = append(out, storage.Contributor{
			Category: a.Category,
			Item:     a.Item,
			Amount:   a.Amount,
			CO2eKg:   a.CO2eKg,
			WaterL:   a.WaterL,
		})
	}
	return out
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
