package model

// ProjectStatus is the closed set of project health states.
type ProjectStatus string

const (
	ProjectOnTrack              ProjectStatus = "NO_PRAZO"
	ProjectWaitingOnCounterpart ProjectStatus = "AGUARDANDO_CLIENTE"
	ProjectBlocked              ProjectStatus = "IMPEDIDO"
)

// Label returns the text shown on the project card.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectWaitingOnCounterpart:
		return "Aguardando"
	case ProjectBlocked:
		return "Impedido"
	case ProjectOnTrack:
		return "No Prazo"
	default:
		return "Status Desconhecido"
	}
}

// Category groups projects on the dashboard. Values outside the known
// set are kept as typed in the sheet.
type Category string

const (
	CategoryMind      Category = "Mind"
	CategoryGestor    Category = "Gestor"
	CategoryCobranca  Category = "Cobrança"
	CategoryComercial Category = "Comercial"
)

// Known reports whether c is one of the predefined categories.
func (c Category) Known() bool {
	switch c {
	case CategoryMind, CategoryGestor, CategoryCobranca, CategoryComercial:
		return true
	}
	return false
}

// Project is one canonical row of the "Projetos" table with its tasks nested.
type Project struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category Category      `json:"category"`
	Progress int           `json:"progress"`
	Status   ProjectStatus `json:"status"`
	// CriateDays is cumulative builder-side execution time.
	CriateDays int `json:"criateDays"`
	// ClientDays is cumulative time spent waiting on the counterpart.
	ClientDays       int    `json:"clientDays"`
	OriginalDeadline string `json:"originalDeadline"`
	Tasks            []Task `json:"tasks"`
}

// Counts returns how many tasks are completed and how many there are.
func (p Project) Counts() (completed, total int) {
	for _, t := range p.Tasks {
		if t.Status == TaskCompleted {
			completed++
		}
	}
	return completed, len(p.Tasks)
}

// FindProject returns the project with the given id. An empty or unknown id
// selects the first project; ok is false only when projects is empty.
func FindProject(projects []Project, id string) (Project, bool) {
	if len(projects) == 0 {
		return Project{}, false
	}
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return projects[0], true
}

// ProjectByID returns the project whose id matches exactly.
func ProjectByID(projects []Project, id string) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
