// Package ingest loads the portfolio from the sheet and falls back to the
// bundled dataset when that fails.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harrisonrobin/portfolio/pkg/fallback"
	"github.com/harrisonrobin/portfolio/pkg/gviz"
	"github.com/harrisonrobin/portfolio/pkg/model"
	"github.com/harrisonrobin/portfolio/pkg/normalize"
)

const (
	DefaultProjectsSheet = "Projetos"
	DefaultTasksSheet    = "Tarefas"
)

// Source returns the data rows of one sheet tab.
type Source interface {
	FetchRows(ctx context.Context, sheet string) ([]gviz.Row, error)
}

// Result is what a load pass hands to the dashboard. Error is set only
// when IsOffline is true.
type Result struct {
	Data      []model.Project `json:"data"`
	IsOffline bool            `json:"isOffline"`
	Error     string          `json:"error,omitempty"`
}

// Loader runs one fetch-and-normalize pass per Load call.
type Loader struct {
	source        Source
	projectsSheet string
	tasksSheet    string
	fallback      func() []model.Project
	normalizer    *normalize.Normalizer
	metrics       MetricsRecorder
	logger        *log.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithSheets overrides the tab names.
func WithSheets(projects, tasks string) Option {
	return func(l *Loader) {
		if projects != "" {
			l.projectsSheet = projects
		}
		if tasks != "" {
			l.tasksSheet = tasks
		}
	}
}

// WithFallback replaces the offline dataset.
func WithFallback(f func() []model.Project) Option {
	return func(l *Loader) { l.fallback = f }
}

// WithNormalizer replaces the clock and id generator used for rows.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(l *Loader) { l.normalizer = n }
}

// WithMetrics records fetch and load outcomes.
func WithMetrics(m MetricsRecorder) Option {
	return func(l *Loader) { l.metrics = m }
}

// WithLogger sets where failures are logged. nil discards them.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		l.logger = logger
	}
}

// NewLoader creates a Loader reading from src.
func NewLoader(src Source, opts ...Option) *Loader {
	l := &Loader{
		source:        src,
		projectsSheet: DefaultProjectsSheet,
		tasksSheet:    DefaultTasksSheet,
		fallback:      fallback.Projects,
		normalizer:    normalize.New(),
		metrics:       NopMetrics{},
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches both tabs, normalizes them and returns the portfolio. It
// never fails: any error yields the fallback data with IsOffline set.
func (l *Loader) Load(ctx context.Context) (res Result) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = l.offline(fmt.Errorf("unexpected failure while normalizing sheet data: %v", r))
		}
		l.metrics.Observe(ctx, OpLoad, !res.IsOffline, time.Since(started))
	}()

	projects, err := l.load(ctx)
	if err != nil {
		return l.offline(err)
	}
	return Result{Data: projects, IsOffline: false}
}

func (l *Loader) load(ctx context.Context) ([]model.Project, error) {
	var (
		projectRows, taskRows []gviz.Row
		projectErr, taskErr   error
		g                     errgroup.Group
	)
	// Both fetches always run to completion so the projects error, when
	// there is one, is the one reported.
	g.Go(func() error {
		projectRows, projectErr = l.fetch(ctx, OpFetchProjects, l.projectsSheet)
		return nil
	})
	g.Go(func() error {
		taskRows, taskErr = l.fetch(ctx, OpFetchTasks, l.tasksSheet)
		return nil
	})
	_ = g.Wait()

	if projectErr != nil {
		return nil, projectErr
	}
	if taskErr != nil {
		return nil, taskErr
	}
	if len(projectRows) == 0 {
		return nil, &gviz.FetchError{
			Kind:    gviz.KindEmpty,
			Sheet:   l.projectsSheet,
			Message: fmt.Sprintf("A aba '%s' parece estar vazia.", l.projectsSheet),
		}
	}

	tasks := l.normalizer.Tasks(taskRows)
	return l.normalizer.Projects(projectRows, tasks), nil
}

func (l *Loader) fetch(ctx context.Context, op, sheet string) ([]gviz.Row, error) {
	started := time.Now()
	rows, err := l.source.FetchRows(ctx, sheet)
	l.metrics.Observe(ctx, op, err == nil, time.Since(started))
	return rows, err
}

func (l *Loader) offline(err error) Result {
	l.logger.Printf("Warning: failed to load portfolio from sheet, using fallback data: %v", err)
	return Result{
		Data:      l.fallback(),
		IsOffline: true,
		Error:     l.userMessage(err),
	}
}

// userMessage turns err into banner text. Payloads that couldn't be
// interpreted almost always mean a wrong tab name or a private sheet.
func (l *Loader) userMessage(err error) string {
	if gviz.IsKind(err, gviz.KindFormat) {
		return fmt.Sprintf("Não foi possível ler as abas '%s' ou '%s'. Verifique se os nomes estão exatos na planilha e se ela está PÚBLICA.",
			l.projectsSheet, l.tasksSheet)
	}
	return gviz.Diagnostic(err)
}
