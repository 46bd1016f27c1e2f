// Package normalize turns loosely typed sheet rows into the canonical
// model. Every malformed field degrades to a default; no row is rejected
// here except project rows without an id.
package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harrisonrobin/portfolio/pkg/gviz"
	"github.com/harrisonrobin/portfolio/pkg/model"
	"github.com/harrisonrobin/portfolio/pkg/util"
)

// Column positions of the "Tarefas" tab.
const (
	taskColID = iota
	taskColProjectID
	taskColName
	taskColResponsible
	taskColResponsibleName
	taskColStatus
	taskColStart
	taskColDuration
	taskColEnd
)

// Column positions of the "Projetos" tab.
const (
	projectColID = iota
	projectColName
	projectColCategory
	projectColProgress
	projectColStatus
	projectColCriateDays
	projectColClientDays
	projectColDeadline
)

const (
	DefaultTaskName    = "Tarefa sem nome"
	DefaultProjectName = "Novo Projeto"
	DefaultCategory    = model.CategoryMind
)

// OwnedTask is a canonical task still tagged with the project it belongs to.
type OwnedTask struct {
	ProjectID string
	Task      model.Task
}

// Normalizer holds the two non-deterministic inputs of normalization.
type Normalizer struct {
	// Now stands in for a deadline the sheet doesn't provide.
	Now func() time.Time
	// NewID names tasks whose id cell is blank.
	NewID func() string
}

// New returns a Normalizer using the wall clock and random ids.
func New() *Normalizer {
	return &Normalizer{
		Now:   time.Now,
		NewID: func() string { return "t-" + uuid.NewString() },
	}
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

func (n *Normalizer) newID() string {
	if n.NewID == nil {
		return "t-" + uuid.NewString()
	}
	return n.NewID()
}

// Task builds one canonical task from a "Tarefas" row.
func (n *Normalizer) Task(row gviz.Row) OwnedTask {
	start := Date(row.Value(taskColStart, ""))
	end := Date(row.Value(taskColEnd, ""))

	id := strings.TrimSpace(row.Text(taskColID, ""))
	if id == "" {
		id = n.newID()
	}

	name := row.Text(taskColName, "")
	if strings.TrimSpace(name) == "" {
		name = DefaultTaskName
	}

	return OwnedTask{
		ProjectID: strings.TrimSpace(row.Text(taskColProjectID, "")),
		Task: model.Task{
			ID:              id,
			Name:            name,
			Responsible:     Responsible(row.Text(taskColResponsible, "")),
			ResponsibleName: row.Text(taskColResponsibleName, ""),
			Status:          TaskStatus(row.Text(taskColStatus, string(model.TaskPending))),
			StartDate:       start,
			DurationDays:    Duration(start, end, row.Number(taskColDuration, 0)),
			EndDate:         end,
		},
	}
}

// Duration picks the task length in days. When both dates are valid and
// end is not before start the span wins over the manual estimate, and is
// at least one day. Otherwise the manual estimate is kept.
func Duration(start, end string, manual float64) int {
	days := util.RoundNonNegative(manual)
	s, okStart := model.ParseDate(start)
	e, okEnd := model.ParseDate(end)
	if !okStart || !okEnd {
		return days
	}
	span := util.CeilDays(e.Sub(s))
	if span < 0 {
		return days
	}
	return max(1, span)
}

// Tasks normalizes every task row, preserving row order.
func (n *Normalizer) Tasks(rows []gviz.Row) []OwnedTask {
	out := make([]OwnedTask, 0, len(rows))
	for _, row := range rows {
		out = append(out, n.Task(row))
	}
	return out
}

// Project builds one canonical project from a "Projetos" row and attaches
// the tasks carrying its id. ok is false when the row has no project id.
func (n *Normalizer) Project(row gviz.Row, tasks []OwnedTask) (model.Project, bool) {
	id := strings.TrimSpace(row.Text(projectColID, ""))
	if id == "" {
		return model.Project{}, false
	}

	own := make([]model.Task, 0)
	for _, t := range tasks {
		if t.ProjectID == id {
			own = append(own, t.Task)
		}
	}

	name := row.Text(projectColName, "")
	if strings.TrimSpace(name) == "" {
		name = DefaultProjectName
	}

	category := model.Category(strings.TrimSpace(row.Text(projectColCategory, "")))
	if category == "" {
		category = DefaultCategory
	}

	deadline := Date(row.Value(projectColDeadline, ""))
	if deadline == "" {
		deadline = model.FormatDate(n.now())
	}

	p := model.Project{
		ID:               id,
		Name:             name,
		Category:         category,
		Status:           ProjectStatus(row.Text(projectColStatus, string(model.ProjectOnTrack))),
		CriateDays:       util.RoundNonNegative(row.Number(projectColCriateDays, 0)),
		ClientDays:       util.RoundNonNegative(row.Number(projectColClientDays, 0)),
		OriginalDeadline: deadline,
		Tasks:            own,
	}
	p.Progress = Progress(p, row.Number(projectColProgress, 0))
	return p, true
}

// Progress derives completion from the task list, falling back to the
// manual column when there are no tasks. Manual values in (0, 1] are
// fractions.
func Progress(p model.Project, manual float64) int {
	done, total := p.Counts()
	if total > 0 {
		return int(math.Round(100 * float64(done) / float64(total)))
	}
	if manual > 0 && manual <= 1 {
		manual *= 100
	}
	return min(100, util.RoundNonNegative(manual))
}

// Projects normalizes every project row, skipping rows without an id.
func (n *Normalizer) Projects(rows []gviz.Row, tasks []OwnedTask) []model.Project {
	out := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		if p, ok := n.Project(row, tasks); ok {
			out = append(out, p)
		}
	}
	return out
}
