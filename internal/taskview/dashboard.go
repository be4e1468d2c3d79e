package taskview

import (
	"time"

	"github.com/yukikurage/tasknest-api/internal/models"
)

// Dashboard holds a user's progress statistics for a given day.
type Dashboard struct {
	CompletedThisWeek  int                     `json:"completed_this_week"`
	CompletedThisMonth int                     `json:"completed_this_month"`
	CategoryCounts     map[models.Category]int `json:"category_counts"`
	ProgressPercent    int                     `json:"progress_percent"`
	TotalTasks         int                     `json:"total_tasks"`
	CompletedTasks     int                     `json:"completed_tasks"`
	WeekStart          time.Time               `json:"week_start"`
	WeekEnd            time.Time               `json:"week_end"`
	MonthStart         time.Time               `json:"month_start"`
}

// WeekBounds returns the Monday and Sunday of the ISO week containing day.
func WeekBounds(day time.Time) (time.Time, time.Time) {
	day = DateOf(day)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// MonthStart returns the first day of day's month.
func MonthStart(day time.Time) time.Time {
	y, m, _ := day.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// Aggregate computes weekly and monthly completions, per-category counts
// and overall progress. Completions are attributed by due date; a completed
// task is counted for the month when its due date is on or after the first
// of the month, with no upper bound. Categories outside the set are not
// counted per category but still count toward progress.
func Aggregate(tasks []models.Task, today time.Time, categories models.CategorySet) (Dashboard, error) {
	day := DateOf(today)
	weekStart, weekEnd := WeekBounds(day)
	monthStart := MonthStart(day)

	dash := Dashboard{
		CategoryCounts: make(map[models.Category]int, categories.Len()),
		WeekStart:      weekStart,
		WeekEnd:        weekEnd,
		MonthStart:     monthStart,
	}
	for _, c := range categories.List() {
		dash.CategoryCounts[c] = 0
	}

	for _, task := range uniqueByID(tasks) {
		dash.TotalTasks++
		if categories.Contains(task.Category) {
			dash.CategoryCounts[task.Category]++
		}

		if !task.Completed {
			continue
		}
		dash.CompletedTasks++

		if !task.HasDueDate() {
			continue
		}
		due, err := dueDateOf(task)
		if err != nil {
			return Dashboard{}, err
		}
		if !due.Before(weekStart) && !due.After(weekEnd) {
			dash.CompletedThisWeek++
		}
		if !due.Before(monthStart) {
			dash.CompletedThisMonth++
		}
	}

	if dash.TotalTasks > 0 {
		dash.ProgressPercent = dash.CompletedTasks * 100 / dash.TotalTasks
	}

	return dash, nil
}
