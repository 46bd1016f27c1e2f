// Package fallback holds the portfolio shown when the sheet can't be read.
package fallback

import "github.com/harrisonrobin/portfolio/pkg/model"

func task(id, name string, who model.Responsible, whoName string, status model.TaskStatus, start string, days int) model.Task {
	return model.Task{
		ID:              id,
		Name:            name,
		Responsible:     who,
		ResponsibleName: whoName,
		Status:          status,
		StartDate:       start + "T00:00:00.000Z",
		DurationDays:    days,
	}
}

// Projects returns a fresh copy of the fallback portfolio on every call,
// so callers may modify the result.
func Projects() []model.Project {
	const (
		owner = model.ResponsibleOwner
		cp    = model.ResponsibleCounterpart
	)
	return []model.Project{
		{
			ID:               "1",
			Name:             "Mind",
			Category:         model.CategoryMind,
			Progress:         75,
			Status:           model.ProjectOnTrack,
			CriateDays:       12,
			ClientDays:       2,
			OriginalDeadline: "2024-06-15T00:00:00.000Z",
			Tasks: []model.Task{
				task("t1", "Levantamento de Requisitos", owner, "Ana (Criate)", model.TaskCompleted, "2024-05-01", 5),
				task("t2", "Desenvolvimento do Modelo", owner, "Carlos (Criate)", model.TaskCompleted, "2024-05-06", 10),
				task("t3", "Validação de Dados", cp, "Roberto (Vedacil)", model.TaskInProgress, "2024-05-20", 3),
				task("t4", "Deploy em Homologação", owner, "Ana (Criate)", model.TaskPending, "2024-05-24", 2),
			},
		},
		{
			ID:               "2",
			Name:             "Gestor Comercial",
			Category:         model.CategoryGestor,
			Progress:         45,
			Status:           model.ProjectWaitingOnCounterpart,
			CriateDays:       8,
			ClientDays:       15,
			OriginalDeadline: "2024-07-01T00:00:00.000Z",
			Tasks: []model.Task{
				task("t1", "Integração API", owner, "Dev Team", model.TaskCompleted, "2024-05-10", 8),
				task("t2", "Aprovação de Layout", cp, "Fernanda (Mkt)", model.TaskInProgress, "2024-05-20", 5),
				task("t3", "Treinamento IA", owner, "Data Team", model.TaskPending, "2024-06-01", 10),
			},
		},
		{
			ID:               "3",
			Name:             "Atendimento Cobrança",
			Category:         model.CategoryCobranca,
			Progress:         90,
			Status:           model.ProjectOnTrack,
			CriateDays:       20,
			ClientDays:       1,
			OriginalDeadline: "2024-05-30T00:00:00.000Z",
			Tasks: []model.Task{
				task("t1", "Fluxo de Régua", owner, "Pedro (Criate)", model.TaskCompleted, "2024-04-15", 15),
				task("t2", "Testes de Envio", owner, "Pedro (Criate)", model.TaskInProgress, "2024-05-10", 5),
				task("t3", "Go-Live", owner, "Pedro (Criate)", model.TaskPending, "2024-05-20", 1),
			},
		},
		{
			ID:               "4",
			Name:             "Souza (Atendimento Comercial)",
			Category:         model.CategoryComercial,
			Progress:         10,
			Status:           model.ProjectBlocked,
			CriateDays:       2,
			ClientDays:       10,
			OriginalDeadline: "2024-08-15T00:00:00.000Z",
			Tasks: []model.Task{
				task("t1", "Acesso ao CRM", cp, "TI (Vedacil)", model.TaskInProgress, "2024-05-15", 2),
				task("t2", "Desenvolvimento Fluxo", owner, "Lucas (Criate)", model.TaskPending, "2024-05-20", 15),
			},
		},
	}
}
