package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/portfolio/pkg/auth"
	"github.com/harrisonrobin/portfolio/pkg/config"
	"github.com/harrisonrobin/portfolio/pkg/ingest"
	"github.com/harrisonrobin/portfolio/pkg/model"
	"github.com/harrisonrobin/portfolio/pkg/server"
	"github.com/harrisonrobin/portfolio/pkg/timeline"
)

var strict bool

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Print the normalized portfolio as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		loader, err := newLoader(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		res := loader.Load(cmd.Context())
		if err := printJSON(res); err != nil {
			return err
		}
		if strict && res.IsOffline {
			return fmt.Errorf("sheet unavailable: %s", res.Error)
		}
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <project-id>",
	Short: "Print the Gantt layout of one project as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		loader, err := newLoader(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		resp, err := projectTimeline(loader.Load(cmd.Context()), args[0], time.Now())
		if err != nil {
			return err
		}
		return printJSON(resp)
	},
}

func projectTimeline(res ingest.Result, id string, now time.Time) (server.TimelineResponse, error) {
	project, ok := model.ProjectByID(res.Data, id)
	if !ok {
		return server.TimelineResponse{}, fmt.Errorf("project '%s' not found", id)
	}
	return server.TimelineResponse{
		Project:   project,
		Layout:    timeline.Compute(project.Tasks, now),
		IsOffline: res.IsOffline,
		Error:     res.Error,
	}, nil
}

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.Listen = listenAddr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := ingest.NewPrometheusMetrics(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		loader, err := newLoader(ctx, cfg, ingest.WithMetrics(metrics))
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Listen,
			Handler:           server.NewHandler(loader, reg),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			log.Printf("Serving portfolio for sheet %s on %s", cfg.SpreadsheetID, cfg.Listen)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("Shutting down...")
		return srv.Shutdown(shutdownCtx)
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize read access to private spreadsheets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flow := auth.NewFlow(filepath.Dir(configPath))
		if _, err := os.Stat(flow.TokenPath()); err == nil {
			log.Printf("Removing existing token file at '%s'", flow.TokenPath())
		}
		if err := flow.Reset(); err != nil {
			return fmt.Errorf("%w. Please delete it manually", err)
		}
		if _, err := flow.Client(cmd.Context()); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		log.Printf("Authentication successful! Token saved to %s", flow.TokenPath())
		return nil
	},
}

var setSheetCmd = &cobra.Command{
	Use:   "set-sheet <spreadsheet-id>",
	Short: "Set the default spreadsheet ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.SpreadsheetID = args[0]
		if err := config.Save(configPath, cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
		fmt.Printf("Default spreadsheet set to: %s\n", args[0])
		return nil
	},
}

func init() {
	loadCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the fallback data was used")
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Address to listen on (overrides config)")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
