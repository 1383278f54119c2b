package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beacodeart/glox/playground"
)

func serveCommand(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	addr := fs.String("addr", "", "listen address (default :8080)")
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if fs.NArg() > 0 {
		return &exitError{code: exitUsage, err: errors.New("lox serve: unexpected arguments")}
	}
	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Serve.Addr = *addr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	server, err := newPlayground(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serveUntilDone(ctx, server, cfg.Serve.Addr)
}

type listenCloser interface {
	Listen(addr string) error
	Close() error
}

// serveUntilDone closes server when ctx ends and waits for the shutdown
// watcher before returning, including when Listen fails.
func serveUntilDone(ctx context.Context, server listenCloser, addr string) error {
	done := make(chan struct{})
	watcher := make(chan struct{})
	go func() {
		defer close(watcher)
		select {
		case <-ctx.Done():
			_ = server.Close()
		case <-done:
		}
	}()

	err := server.Listen(addr)
	close(done)
	<-watcher
	if err != nil {
		return fmt.Errorf("lox serve: %w", err)
	}
	return nil
}

func newPlayground(cfg cliConfig) (*playground.Server, error) {
	logger, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	return playground.New(playground.Config{
		SessionTTL:  cfg.Serve.SessionTTL,
		MaxSessions: cfg.Serve.MaxSessions,
		Logger:      logger,
	})
}
