package timeline

import (
	"testing"
	"time"

	"github.com/harrisonrobin/portfolio/pkg/fallback"
	"github.com/harrisonrobin/portfolio/pkg/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mkTask(id, start string, days int, status model.TaskStatus) model.Task {
	return model.Task{ID: id, StartDate: start, DurationDays: days, Status: status}
}

func TestComputeFallbackProject(t *testing.T) {
	project := fallback.Projects()[0]
	now := time.Date(2024, 5, 25, 15, 30, 0, 0, time.UTC)

	l := Compute(project.Tasks, now)

	if !l.AxisStart.Equal(day(2024, 4, 28)) {
		t.Errorf("Expected axis start 2024-04-28, got %v", l.AxisStart)
	}
	if len(l.Days) != 36 {
		t.Errorf("Expected 36 days, got %d", len(l.Days))
	}
	if !l.Days[len(l.Days)-1].Equal(day(2024, 6, 2)) {
		t.Errorf("Expected last day 2024-06-02, got %v", l.Days[len(l.Days)-1])
	}

	wantOffsets := []int{3, 8, 22, 26}
	for i, bar := range l.Bars {
		if !bar.Visible {
			t.Errorf("Bar %s: expected visible", bar.TaskID)
		}
		if bar.OffsetDays != wantOffsets[i] {
			t.Errorf("Bar %s: expected offset %d, got %d", bar.TaskID, wantOffsets[i], bar.OffsetDays)
		}
		if bar.WidthDays != project.Tasks[i].DurationDays {
			t.Errorf("Bar %s: expected width %d, got %d", bar.TaskID, project.Tasks[i].DurationDays, bar.WidthDays)
		}
	}

	if l.TodayOffset != 27 || !l.TodayVisible() {
		t.Errorf("Expected visible today offset 27, got %d", l.TodayOffset)
	}

	// t3 is in progress and should have ended on the 23rd.
	if !l.Bars[2].Late {
		t.Error("Expected t3 to be late")
	}
	if l.Bars[0].Late || l.Bars[3].Late {
		t.Error("Expected completed and future tasks not to be late")
	}
	if l.Width(48) != 36*48 {
		t.Errorf("Expected width %d, got %d", 36*48, l.Width(48))
	}
}

func TestComputeManualDurationScenario(t *testing.T) {
	tasks := []model.Task{mkTask("t1", "2024-05-01T00:00:00.000Z", 5, model.TaskPending)}
	l := Compute(tasks, day(2024, 5, 2))

	if !l.AxisStart.Equal(day(2024, 4, 28)) {
		t.Errorf("Expected axis start 2024-04-28, got %v", l.AxisStart)
	}
	// 3 days of lead, 5 of work, 7 of trail, inclusive of both ends.
	if len(l.Days) != 16 {
		t.Errorf("Expected 16 days, got %d", len(l.Days))
	}
	if l.Bars[0].OffsetDays != 3 || l.Bars[0].WidthDays != 5 {
		t.Errorf("Expected offset 3 width 5, got %+v", l.Bars[0])
	}
	if !l.Bars[0].EstimatedEnd.Equal(day(2024, 5, 6)) {
		t.Errorf("Expected estimated end 2024-05-06, got %v", l.Bars[0].EstimatedEnd)
	}
}

func TestComputeEmpty(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 45, 0, 0, time.UTC)
	l := Compute(nil, now)

	if len(l.Days) != 1 || !l.Days[0].Equal(day(2024, 5, 10)) {
		t.Errorf("Expected a single-day axis on 2024-05-10, got %v", l.Days)
	}
	if l.TodayOffset != 0 || !l.TodayVisible() {
		t.Errorf("Expected today at offset 0, got %d", l.TodayOffset)
	}
	if l.Bars == nil || len(l.Bars) != 0 {
		t.Errorf("Expected empty bars, got %#v", l.Bars)
	}
}

func TestComputeInvalidStartIsHiddenAndIgnored(t *testing.T) {
	tasks := []model.Task{
		mkTask("bad", "", 50, model.TaskPending),
		mkTask("ok", "2024-05-10T00:00:00.000Z", 2, model.TaskPending),
		mkTask("junk", "not-a-date", 3, model.TaskPending),
	}
	l := Compute(tasks, day(2024, 5, 10))

	if !l.AxisStart.Equal(day(2024, 5, 7)) {
		t.Errorf("Expected axis start 2024-05-07, got %v", l.AxisStart)
	}
	if len(l.Days) != 13 {
		t.Errorf("Expected 13 days, got %d", len(l.Days))
	}
	if l.Bars[0].Visible || l.Bars[2].Visible {
		t.Error("Expected tasks without a start date to be hidden")
	}
	if !l.Bars[1].Visible || l.Bars[1].OffsetDays != 3 {
		t.Errorf("Expected visible bar at offset 3, got %+v", l.Bars[1])
	}
	if l.Bars[0].TaskID != "bad" || l.Bars[2].TaskID != "junk" {
		t.Error("Expected bars to keep task order and ids")
	}
}

func TestComputeAllInvalidAnchorsOnToday(t *testing.T) {
	tasks := []model.Task{mkTask("a", "", 4, model.TaskPending)}
	l := Compute(tasks, day(2024, 5, 10))

	if !l.AxisStart.Equal(day(2024, 5, 7)) || len(l.Days) != 11 {
		t.Errorf("Expected 11 days from 2024-05-07, got %d from %v", len(l.Days), l.AxisStart)
	}
	if l.TodayOffset != LeadPaddingDays {
		t.Errorf("Expected today at offset %d, got %d", LeadPaddingDays, l.TodayOffset)
	}
}

func TestComputeCapsAxis(t *testing.T) {
	tasks := []model.Task{mkTask("long", "2024-01-01T00:00:00.000Z", 400, model.TaskPending)}
	l := Compute(tasks, day(2030, 1, 1))

	if len(l.Days) != MaxAxisDays {
		t.Errorf("Expected %d days, got %d", MaxAxisDays, len(l.Days))
	}
	if !l.Days[0].Equal(day(2023, 12, 29)) {
		t.Errorf("Expected first day 2023-12-29, got %v", l.Days[0])
	}
	if !l.Days[MaxAxisDays-1].Equal(day(2023, 12, 29).AddDate(0, 0, MaxAxisDays-1)) {
		t.Errorf("Expected consecutive days, got last %v", l.Days[MaxAxisDays-1])
	}
	if l.TodayVisible() {
		t.Error("Expected today to fall outside the capped axis")
	}
}

func TestComputeTiesShareOffset(t *testing.T) {
	tasks := []model.Task{
		mkTask("a", "2024-05-10T00:00:00.000Z", 2, model.TaskPending),
		mkTask("b", "2024-05-10T00:00:00.000Z", 4, model.TaskPending),
	}
	l := Compute(tasks, day(2024, 5, 1))
	if l.Bars[0].OffsetDays != l.Bars[1].OffsetDays {
		t.Errorf("Expected equal offsets, got %d and %d", l.Bars[0].OffsetDays, l.Bars[1].OffsetDays)
	}
	if l.Bars[0].TaskID != "a" || l.Bars[1].TaskID != "b" {
		t.Error("Expected input order to be preserved")
	}
}

func TestComputeUsesLocalDayForNow(t *testing.T) {
	tasks := []model.Task{mkTask("a", "2024-05-10T00:00:00.000Z", 1, model.TaskPending)}
	brt := time.FixedZone("BRT", -3*60*60)

	// 22:00 in São Paulo on the 10th is already the 11th in UTC.
	l := Compute(tasks, time.Date(2024, 5, 10, 22, 0, 0, 0, brt))
	if l.TodayOffset != 3 {
		t.Errorf("Expected today offset 3, got %d", l.TodayOffset)
	}
}
