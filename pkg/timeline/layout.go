// Package timeline lays a project's tasks out on a day grid for a Gantt
// chart. It does no I/O; the only input besides the tasks is "now".
package timeline

import (
	"time"

	"github.com/harrisonrobin/portfolio/pkg/model"
	"github.com/harrisonrobin/portfolio/pkg/util"
)

const (
	// LeadPaddingDays is the empty space before the earliest task.
	LeadPaddingDays = 3
	// TrailPaddingDays is the empty space after the latest task end.
	TrailPaddingDays = 7
	// MaxAxisDays caps the axis length. Real projects longer than this are
	// cut at the ceiling; it is an accepted approximation, not an error.
	MaxAxisDays = 180
)

// Bar is one task's position on the axis, in days.
type Bar struct {
	TaskID string `json:"taskId"`
	// Visible is false when the task has no usable start date; its offset
	// and width are then meaningless and the bar must not be drawn.
	Visible      bool      `json:"visible"`
	OffsetDays   int       `json:"offsetDays"`
	WidthDays    int       `json:"widthDays"`
	EstimatedEnd time.Time `json:"estimatedEnd"`
	// Late marks unfinished tasks whose estimated end is already past.
	Late bool `json:"late"`
}

// Layout is the axis plus one bar per task, in task order.
type Layout struct {
	AxisStart   time.Time   `json:"axisStart"`
	Days        []time.Time `json:"days"`
	Bars        []Bar       `json:"bars"`
	TodayOffset int         `json:"todayOffset"`
}

// TodayVisible reports whether the "now" marker falls inside the axis.
func (l Layout) TodayVisible() bool {
	return l.TodayOffset >= 0 && l.TodayOffset < len(l.Days)
}

// Width is the axis length in pixels for the given column width.
func (l Layout) Width(dayWidth int) int {
	return len(l.Days) * dayWidth
}

// Compute lays tasks out relative to now. With no tasks the axis is the
// single day containing now.
func Compute(tasks []model.Task, now time.Time) Layout {
	today := util.CivilDay(now)
	if len(tasks) == 0 {
		return Layout{
			AxisStart:   today,
			Days:        []time.Time{today},
			Bars:        []Bar{},
			TodayOffset: 0,
		}
	}

	minDate, maxDate, found := bounds(tasks)
	if !found {
		minDate, maxDate = today, today
	}

	axisStart := minDate.AddDate(0, 0, -LeadPaddingDays)
	axisEnd := maxDate.AddDate(0, 0, TrailPaddingDays)

	days := make([]time.Time, 0, min(MaxAxisDays, util.DaysBetween(axisStart, axisEnd)+1))
	for d := axisStart; !d.After(axisEnd) && len(days) < MaxAxisDays; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	bars := make([]Bar, 0, len(tasks))
	for _, t := range tasks {
		bars = append(bars, place(t, axisStart, today))
	}

	return Layout{
		AxisStart:   axisStart,
		Days:        days,
		Bars:        bars,
		TodayOffset: util.DaysBetween(axisStart, today),
	}
}

// bounds scans the tasks with a valid start for the earliest start and the
// latest start+duration, both as civil days.
func bounds(tasks []model.Task) (minDate, maxDate time.Time, found bool) {
	for _, t := range tasks {
		start, ok := t.Start()
		if !ok {
			continue
		}
		start = util.CivilDay(start.UTC())
		end := start.AddDate(0, 0, t.DurationDays)
		if !found || start.Before(minDate) {
			minDate = start
		}
		if !found || end.After(maxDate) {
			maxDate = end
		}
		found = true
	}
	return minDate, maxDate, found
}

func place(t model.Task, axisStart, today time.Time) Bar {
	start, ok := t.Start()
	if !ok {
		return Bar{TaskID: t.ID}
	}
	start = util.CivilDay(start.UTC())
	end := start.AddDate(0, 0, t.DurationDays)
	return Bar{
		TaskID:       t.ID,
		Visible:      true,
		OffsetDays:   util.DaysBetween(axisStart, start),
		WidthDays:    t.DurationDays,
		EstimatedEnd: end,
		Late:         t.Status != model.TaskCompleted && end.Before(today),
	}
}
