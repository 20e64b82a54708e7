package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"dockhand/internal/deploy"
	"dockhand/internal/events"
	"dockhand/internal/httpserve"
	"dockhand/internal/runtime"
	"dockhand/internal/store"
	"dockhand/internal/webui"
	"dockhand/pkg/kv"
	"dockhand/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dockhand server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.GetLogger().SetLogLevel(cfg.General.LogLevel)

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	bus := events.NewInMemoryEventBus(100)
	if err := bus.Subscribe(events.NewAuditLogHandler()); err != nil {
		return fmt.Errorf("subscribe audit handler: %w", err)
	}
	if err := bus.Start(); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	defer func() {
		if err := bus.Stop(); err != nil {
			logger.Warn("Failed to stop event bus", "error", err)
		}
	}()

	// The local engine is optional; without it only agent nodes work.
	var rt runtime.Runtime
	if docker, err := runtime.NewDockerRuntime(cfg.ContainerEngine.Sock); err != nil {
		logger.Warn("Local docker engine unavailable", "sock", cfg.ContainerEngine.Sock, "error", err)
	} else {
		rt = docker
	}

	rateStore, err := kv.NewRateLimiterStore(cfg.KVDir(), 1, 5, 15*time.Minute)
	if err != nil {
		logger.Warn("Login rate limiter disabled", "error", err)
		rateStore = nil
	} else {
		defer rateStore.Close()
	}

	svc := deploy.NewService(st, bus, rt,
		[]byte(cfg.Agent.Secret),
		time.Duration(cfg.Agent.TimeoutSeconds)*time.Second,
		cfg.ContainerEngine.Network)

	e := httpserve.RegisterRoutes(echo.New(), &httpserve.App{
		Config:    cfg,
		Service:   svc,
		RateStore: rateStore,
		Renderer:  webui.NewRenderer(cfg.Build.Version),
	})

	addr := fmt.Sprintf(":%d", cfg.Http.Port)
	go func() {
		logger.Info("Server listening", "addr", addr, "admin", cfg.Admin.Path)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", "error", err)
		}
	}()

	// Background node health probing.
	probeCtx, probeCancel := context.WithCancel(context.Background())
	defer probeCancel()
	go probeNodes(probeCtx, svc)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// probeNodes refreshes the connection status of every node once a minute.
func probeNodes(ctx context.Context, svc *deploy.Service) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.RefreshAllNodes(ctx); err != nil {
				logger.Warn("Node probe failed", "error", err)
			}
		}
	}
}
