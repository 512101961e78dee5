package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/service"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0", time.Minute) // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shutdown quickly with short timeout and no-op cleanup
	_, cancel := context.WithCancel(context.Background())
	go func() {
		// trigger gracefulShutdown select by simulating signal via closing after a brief delay
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	// We cannot send OS signals easily here; instead, directly call Shutdown to simulate graceful flow.
	// Verify it doesn't panic and completes.
	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	// Use a server that responds immediately
	srv := startServer(dummyHandler{}, "0", time.Minute)

	cleaned := make(chan struct{}, 1)
	go func() {
		ctx := context.Background()
		gracefulShutdown(ctx, srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

// stubService overrides only what the analyze command calls.
type stubService struct {
	service.AnalysisService
	analysis *models.CompleteAnalysis
	err      error
}

func (s stubService) CompleteAnalysis(context.Context, string) (*models.CompleteAnalysis, error) {
	return s.analysis, s.err
}

func (s stubService) PoweredBy() []string { return []string{"Yahoo Finance"} }

func TestAnalyze_WritesResponseShape(t *testing.T) {
	svc := stubService{analysis: &models.CompleteAnalysis{
		Symbol:         "AAPL",
		Recommendation: models.Recommendation{Action: models.ActionHold, SupportingFactors: []string{}},
		Timestamp:      time.Date(2025, 9, 12, 14, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	if err := analyze(context.Background(), &buf, svc, "aapl"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"symbol", "complete_analysis", "powered_by", "timestamp"} {
		if _, ok := out[key]; !ok {
			t.Fatalf("missing %q", key)
		}
	}
}

func TestAnalyze_Error(t *testing.T) {
	svc := stubService{err: service.ErrAllSectionsUnavailable}
	var buf bytes.Buffer
	err := analyze(context.Background(), &buf, svc, "AAPL")
	if !errors.Is(err, service.ErrAllSectionsUnavailable) || buf.Len() != 0 {
		t.Fatalf("unexpected result err=%v out=%q", err, buf.String())
	}
}

func TestAnalyzeCmd(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		build   serviceBuilder
		wantErr bool
	}{
		{
			name: "prints analysis",
			args: []string{"AAPL"},
			build: func(config.Config) (service.AnalysisService, func(), error) {
				return stubService{analysis: &models.CompleteAnalysis{Symbol: "AAPL"}}, func() {}, nil
			},
		},
		{
			name:    "missing symbol",
			args:    []string{},
			build:   func(config.Config) (service.AnalysisService, func(), error) { return stubService{}, func() {}, nil },
			wantErr: true,
		},
		{
			name: "build failure",
			args: []string{"AAPL"},
			build: func(config.Config) (service.AnalysisService, func(), error) {
				return nil, nil, errors.New("postgres down")
			},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Config{}
			cmd := newAnalyzeCmd(&cfg, tc.build)
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(tc.args)

			err := cmd.ExecuteContext(context.Background())
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if !strings.Contains(buf.String(), `"symbol": "AAPL"`) {
				t.Fatalf("unexpected output %s", buf.String())
			}
		})
	}
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"api", "analyze"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("command %q not registered", name)
		}
	}
}
