package model

import "time"

// TaskStatus is the closed set of states a task can be in.
type TaskStatus string

const (
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskPending    TaskStatus = "PENDING"
)

// Label returns the text shown on the dashboard.
func (s TaskStatus) Label() string {
	switch s {
	case TaskCompleted:
		return "Concluído"
	case TaskInProgress:
		return "Em Andamento"
	default:
		return "Pendente"
	}
}

// Responsible is the party a task is waiting on.
type Responsible string

const (
	// ResponsibleOwner is the builder-side team.
	ResponsibleOwner Responsible = "Criate"
	// ResponsibleCounterpart is the client-side team.
	ResponsibleCounterpart Responsible = "Vedacil"
)

// DateLayout is the canonical encoding of every date string in the model.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Task is one canonical row of the "Tarefas" table.
type Task struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Responsible     Responsible `json:"responsible"`
	ResponsibleName string      `json:"responsibleName"`
	Status          TaskStatus  `json:"status"`
	StartDate       string      `json:"startDate"`
	DurationDays    int         `json:"durationDays"`
	// EndDate is the actual completion date, empty unless the sheet had one.
	EndDate string `json:"endDate,omitempty"`
}

// Start parses StartDate. ok is false for the empty sentinel or bad input.
func (t Task) Start() (time.Time, bool) {
	return ParseDate(t.StartDate)
}

// EstimatedEnd is start plus DurationDays, or the zero time when the start is invalid.
func (t Task) EstimatedEnd() time.Time {
	start, ok := t.Start()
	if !ok {
		return time.Time{}
	}
	return start.AddDate(0, 0, t.DurationDays)
}

// ParseDate reads a canonical date string. Other RFC3339 forms are accepted too.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t in DateLayout, always in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
