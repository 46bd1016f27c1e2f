package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/portfolio/pkg/auth"
	"github.com/harrisonrobin/portfolio/pkg/config"
	"github.com/harrisonrobin/portfolio/pkg/gviz"
	"github.com/harrisonrobin/portfolio/pkg/ingest"
	"github.com/harrisonrobin/portfolio/pkg/sheets"
)

var (
	configPath    string
	spreadsheetID string
	sourceKind    string
	projectsSheet string
	tasksSheet    string
	timeout       time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Load a project portfolio from a Google spreadsheet",
	Long: `Load a project portfolio from a shared Google spreadsheet.

The "Projetos" and "Tarefas" tabs are fetched, normalized into projects with
their tasks, and printed as JSON. When the sheet can't be read the bundled
sample portfolio is returned instead with isOffline set.`,
	SilenceUsage: true,
}

func init() {
	log.SetOutput(os.Stderr)

	defaultPath, err := config.GetConfigPath()
	if err != nil {
		defaultPath = "config.yaml"
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", defaultPath, "Path to the config file")
	pf.StringVar(&spreadsheetID, "sheet", "", "Spreadsheet ID (overrides config)")
	pf.StringVar(&sourceKind, "source", "", "Where to read from: gviz or sheets (overrides config)")
	pf.StringVar(&projectsSheet, "projects-tab", "", "Name of the projects tab (overrides config)")
	pf.StringVar(&tasksSheet, "tasks-tab", "", "Name of the tasks tab (overrides config)")
	pf.DurationVar(&timeout, "timeout", 0, "Timeout per sheet request (overrides config)")

	rootCmd.AddCommand(loadCmd, timelineCmd, serveCmd, authCmd, setSheetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the config file, PORTFOLIO_* variables and flags, in
// that order of increasing priority.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)

	if spreadsheetID != "" {
		cfg.SpreadsheetID = spreadsheetID
	}
	if sourceKind != "" {
		cfg.Source = sourceKind
	}
	if projectsSheet != "" {
		cfg.ProjectsSheet = projectsSheet
	}
	if tasksSheet != "" {
		cfg.TasksSheet = tasksSheet
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSource(ctx context.Context, cfg *config.Config) (ingest.Source, error) {
	switch cfg.Source {
	case config.SourceSheets:
		var opt option.ClientOption
		if cfg.APIKey != "" {
			opt = option.WithAPIKey(cfg.APIKey)
		} else {
			client, err := auth.NewFlow(filepath.Dir(configPath)).Client(ctx)
			if err != nil {
				return nil, fmt.Errorf("sheets source needs an API key or a completed 'portfolio auth': %w", err)
			}
			opt = option.WithHTTPClient(client)
		}
		src, err := sheets.NewSource(ctx, cfg.SpreadsheetID, opt)
		if err != nil {
			return nil, err
		}
		src.Timeout = cfg.Timeout
		return src, nil
	default:
		return gviz.NewClient(cfg.SpreadsheetID, cfg.Timeout), nil
	}
}

func newLoader(ctx context.Context, cfg *config.Config, opts ...ingest.Option) (*ingest.Loader, error) {
	src, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]ingest.Option{
		ingest.WithSheets(cfg.ProjectsSheet, cfg.TasksSheet),
		ingest.WithLogger(log.Default()),
	}, opts...)
	return ingest.NewLoader(src, opts...), nil
}
