package app

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/radarcurve/pkg/config"
	"go.uber.org/zap"
)

type staticProvider struct {
	cfg *config.ConfigData
}

func (p staticProvider) LoadConfig() (*config.ConfigData, error) { return p.cfg, nil }
func (p staticProvider) GetServer() (*config.ServerData, error) { return &p.cfg.Server, nil }
func (p staticProvider) GetScenarios() ([]config.ScenarioData, error) { return p.cfg.Scenarios, nil }
func (p staticProvider) IsReadOnly() bool { return true }
func (p staticProvider) Close() error { return nil }

func TestRunStopsOnCancel(t *testing.T) {
	cfg := &config.ConfigData{Server: config.ServerData{ListenAddr: "127.0.0.1", Port: 48123}}

	a := New(staticProvider{cfg: cfg}, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	cfg := &config.ConfigData{Server: config.ServerData{ListenAddr: "127.0.0.1", Port: port}}
	a := New(staticProvider{cfg: cfg}, zap.NewNop().Sugar())

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "REST server") {
			t.Errorf("Run returned %v, expected the listen error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run kept waiting after the server failed to listen")
	}
}
