package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startServer(t *testing.T, srv *Server) (context.CancelFunc, <-chan error, string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	select {
	case addr := <-srv.Listening():
		return cancel, done, addr.String()
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("server did not start")
		return nil, nil, ""
	}
}

func TestServer_ServesUntilCancelled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := New(handler, Options{ShutdownTimeout: 5 * time.Second}, testLogger())

	cancel, done, addr := startServer(t, srv)

	resp, err := http.Get(fmt.Sprintf("http://%s/", addr))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("unexpected body %q", body)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ShutdownHooksRunLIFO(t *testing.T) {
	srv := New(http.NotFoundHandler(), Options{ShutdownTimeout: 5 * time.Second}, testLogger())

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) ShutdownFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}
	srv.OnShutdown("database", record("database"))
	srv.OnShutdown("cache", record("cache"))

	cancel, done, _ := startServer(t, srv)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Serve returned %v", err)
	}

	if len(order) != 2 || order[0] != "cache" || order[1] != "database" {
		t.Errorf("shutdown order = %v, want [cache database]", order)
	}
}

func TestServer_ShutdownHookErrorsJoined(t *testing.T) {
	srv := New(http.NotFoundHandler(), Options{ShutdownTimeout: 5 * time.Second}, testLogger())

	errCache := errors.New("cache close failed")
	ran := false
	srv.OnShutdown("database", func(ctx context.Context) error {
		ran = true
		return nil
	})
	srv.OnShutdown("cache", func(ctx context.Context) error {
		return errCache
	})

	cancel, done, _ := startServer(t, srv)
	cancel()

	err := <-done
	if !errors.Is(err, errCache) {
		t.Errorf("expected cache error, got %v", err)
	}
	if !ran {
		t.Error("a failing hook must not stop later hooks")
	}
}

func TestServer_RunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	srv := New(http.NotFoundHandler(), Options{Port: port}, testLogger())

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected error binding an occupied port")
	}
}

func TestServer_Addr(t *testing.T) {
	srv := New(http.NotFoundHandler(), Options{Port: 9090}, testLogger())
	if srv.Addr() != ":9090" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
}
