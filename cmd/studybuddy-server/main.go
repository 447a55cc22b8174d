package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"studybuddy/internal/api"
	"studybuddy/internal/config"
	"studybuddy/internal/httpx"
	"studybuddy/internal/logx"
	"studybuddy/internal/quotes"
	"studybuddy/internal/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "studybuddy-server:", err)
		}
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is done or the listener fails. Deferred cleanup,
// including the log sinks, has finished by the time it returns.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("studybuddy-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML/JSON config file")
		addr       = fs.String("addr", "", "listen address (overrides HTTP_ADDR)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	logSvc, log := logx.New(logx.Config{Level: cfg.LogLevel, Console: cfg.LogConsole, File: cfg.LogFile})
	defer logSvc.Close()

	gin.SetMode(gin.ReleaseMode)

	client := httpx.New(cfg.QuoteTimeout, cfg.QuoteRatePerSec, log)
	srv := api.New(scheduler.NewEngine(log), quotes.New(cfg.QuoteURL, client, log), log)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, httpSrv, log)
}

func serve(ctx context.Context, httpSrv *http.Server, log logx.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", logx.String("addr", httpSrv.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error("server stopped", logx.Err(err))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", logx.Err(err))
			return err
		}
		log.Info("bye")
		return nil
	}
}
