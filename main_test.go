package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harrisonrobin/portfolio/pkg/config"
	"github.com/harrisonrobin/portfolio/pkg/fallback"
	"github.com/harrisonrobin/portfolio/pkg/gviz"
	"github.com/harrisonrobin/portfolio/pkg/ingest"
)

func resetFlags(t *testing.T) {
	t.Helper()
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	spreadsheetID, sourceKind, projectsSheet, tasksSheet = "", "", "", ""
	timeout = 0
}

func TestResolveConfigPriority(t *testing.T) {
	resetFlags(t)
	data := "spreadsheet_id: from-file\nprojects_sheet: Carteira\ntimeout: 5s\n"
	if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORTFOLIO_SPREADSHEET_ID", "from-env")

	cfg, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}
	if cfg.SpreadsheetID != "from-env" {
		t.Errorf("Expected env to override file, got %s", cfg.SpreadsheetID)
	}
	if cfg.ProjectsSheet != "Carteira" || cfg.Timeout != 5*time.Second {
		t.Errorf("Expected file values, got %+v", cfg)
	}

	spreadsheetID = "from-flag"
	timeout = time.Second
	cfg, err = resolveConfig()
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}
	if cfg.SpreadsheetID != "from-flag" || cfg.Timeout != time.Second {
		t.Errorf("Expected flags to win, got %+v", cfg)
	}
}

func TestResolveConfigRequiresSheet(t *testing.T) {
	resetFlags(t)
	t.Setenv("PORTFOLIO_SPREADSHEET_ID", "")
	if _, err := resolveConfig(); err == nil {
		t.Error("Expected an error without a spreadsheet id")
	}
}

func TestNewSourceDefaultsToGViz(t *testing.T) {
	resetFlags(t)
	cfg := config.Default()
	cfg.SpreadsheetID = "abc"

	src, err := newSource(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newSource failed: %v", err)
	}
	client, ok := src.(*gviz.Client)
	if !ok {
		t.Fatalf("Expected a gviz client, got %T", src)
	}
	if client.SpreadsheetID != "abc" || client.HTTPClient.Timeout != cfg.Timeout {
		t.Errorf("Unexpected client %+v", client)
	}
}

func TestNewSourceSheetsWithAPIKey(t *testing.T) {
	resetFlags(t)
	cfg := config.Default()
	cfg.SpreadsheetID = "abc"
	cfg.Source = config.SourceSheets
	cfg.APIKey = "key"

	if _, err := newSource(context.Background(), cfg); err != nil {
		t.Fatalf("newSource failed: %v", err)
	}
}

func TestNewSourceSheetsWithoutCredentials(t *testing.T) {
	resetFlags(t)
	cfg := config.Default()
	cfg.SpreadsheetID = "abc"
	cfg.Source = config.SourceSheets

	if _, err := newSource(context.Background(), cfg); err == nil {
		t.Error("Expected an error without an API key or credentials.json")
	}
}

func TestProjectTimelineExactMatch(t *testing.T) {
	res := ingest.Result{Data: fallback.Projects(), IsOffline: true, Error: "Erro HTTP: 500"}
	now := time.Date(2024, 5, 25, 12, 0, 0, 0, time.UTC)

	resp, err := projectTimeline(res, "2", now)
	if err != nil {
		t.Fatalf("projectTimeline failed: %v", err)
	}
	if resp.Project.ID != "2" || !resp.IsOffline || resp.Error != "Erro HTTP: 500" {
		t.Errorf("Unexpected response %+v", resp)
	}
	if len(resp.Layout.Bars) != len(resp.Project.Tasks) {
		t.Errorf("Expected one bar per task, got %d", len(resp.Layout.Bars))
	}

	_, err = projectTimeline(res, "bogus", now)
	if err == nil || err.Error() != "project 'bogus' not found" {
		t.Errorf("Expected not-found error, got %v", err)
	}
}
