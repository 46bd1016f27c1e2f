package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/harrisonrobin/portfolio/pkg/model"
)

// Rule maps raw text to a result when Match holds. Match receives the
// canonicalised text (see Canonical).
type Rule[T any] struct {
	Match  func(string) bool
	Result T
}

// Rules is an ordered, first-match-wins rule list with a mandatory default.
type Rules[T any] struct {
	List    []Rule[T]
	Default T
}

// Apply canonicalises raw and returns the result of the first matching rule.
func (r Rules[T]) Apply(raw string) T {
	s := Canonical(raw)
	for _, rule := range r.List {
		if rule.Match(s) {
			return rule.Result
		}
	}
	return r.Default
}

// Canonical composes accents, upper-cases for pt-BR and trims whitespace,
// so "concluído" typed with a combining accent still equals "CONCLUÍDO".
func Canonical(raw string) string {
	s := norm.NFC.String(raw)
	s = cases.Upper(language.BrazilianPortuguese).String(s)
	return strings.TrimSpace(s)
}

// Contains matches when the text contains any of the tokens.
func Contains(tokens ...string) func(string) bool {
	return func(s string) bool {
		for _, tok := range tokens {
			if strings.Contains(s, tok) {
				return true
			}
		}
		return false
	}
}

// Equals matches when the text is exactly one of the tokens.
func Equals(tokens ...string) func(string) bool {
	return func(s string) bool {
		for _, tok := range tokens {
			if s == tok {
				return true
			}
		}
		return false
	}
}

// Any matches when at least one of the matchers does.
func Any(matchers ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, m := range matchers {
			if m(s) {
				return true
			}
		}
		return false
	}
}

// ProjectStatusRules orders blocked before waiting before on-track.
var ProjectStatusRules = Rules[model.ProjectStatus]{
	List: []Rule[model.ProjectStatus]{
		{Match: Contains("IMPEDIDO", "ATRASADO", "BLOCKED", "DELAYED"), Result: model.ProjectBlocked},
		{Match: Contains("AGUARDANDO", "CLIENTE", "WAITING", "COUNTERPART"), Result: model.ProjectWaitingOnCounterpart},
		{Match: Any(Contains("PRAZO", "ON_TRACK", "ON TRACK", "ON-TRACK"), Equals("OK")), Result: model.ProjectOnTrack},
	},
	Default: model.ProjectOnTrack,
}

// TaskStatusRules only accepts exact synonyms; anything else is pending.
var TaskStatusRules = Rules[model.TaskStatus]{
	List: []Rule[model.TaskStatus]{
		{Match: Equals("CONCLUÍDO", "CONCLUIDO", "COMPLETED", "DONE", "OK", "FINALIZADO"), Result: model.TaskCompleted},
		{Match: Equals("EM ANDAMENTO", "IN_PROGRESS", "IN PROGRESS", "DOING", "EXECUTANDO", "ANDAMENTO"), Result: model.TaskInProgress},
	},
	Default: model.TaskPending,
}

// ResponsibleRules send anything naming the client side to the counterpart.
var ResponsibleRules = Rules[model.Responsible]{
	List: []Rule[model.Responsible]{
		{Match: Contains("VEDACIL", "CLIENTE", "CLIENT"), Result: model.ResponsibleCounterpart},
	},
	Default: model.ResponsibleOwner,
}

// ProjectStatus normalizes a free-text project status.
func ProjectStatus(raw string) model.ProjectStatus { return ProjectStatusRules.Apply(raw) }

// TaskStatus normalizes a free-text task status.
func TaskStatus(raw string) model.TaskStatus { return TaskStatusRules.Apply(raw) }

// Responsible normalizes the responsible-party column.
func Responsible(raw string) model.Responsible { return ResponsibleRules.Apply(raw) }
