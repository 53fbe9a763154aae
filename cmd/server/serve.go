package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenpitch/greenpitch/internal/config"
	"github.com/greenpitch/greenpitch/internal/handlers"
	"github.com/greenpitch/greenpitch/internal/logging"
	"github.com/greenpitch/greenpitch/internal/services"
	"github.com/greenpitch/greenpitch/internal/site"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the HTTP server",
	Long: `Start the HTTP server.

Examples:
  greenpitch serve
  greenpitch serve --port 3000 --storage redis
  greenpitch serve --document ./web/index.html --watch`,
	RunE: runServe,
}

// flagKeys maps serve flags onto config keys
var flagKeys = map[string]string{
	"host":      "server.host",
	"port":      "server.port",
	"document":  "document.path",
	"watch":     "document.watch",
	"storage":   "storage.kind",
	"log-level": "log.level",
}

func init() {
	serveCmd.Flags().String("host", "", "Host to bind to")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("document", "", "Serve this HTML file instead of the embedded page")
	serveCmd.Flags().Bool("watch", false, "Reload the document when it changes on disk")
	serveCmd.Flags().String("storage", "memory", "Preference storage (memory, redis, postgres, sqlite)")
	serveCmd.Flags().StringP("log-level", "l", "info", "Log level (debug, info, warn, error)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	return config.Load(v)
}

// bindFlags lets explicitly set flags override every other source
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logging.New(&logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})

	doc, err := services.LoadDocument(cfg.Document.Path)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	store, closeStore, err := services.OpenStore(services.StoreOptions{
		Kind:        cfg.Storage.Kind,
		RedisURL:    cfg.Storage.RedisURL,
		RedisPrefix: cfg.Storage.RedisPrefix,
		RedisTTL:    cfg.Storage.RedisTTL,
		DatabaseURL: cfg.Storage.DatabaseURL,
		Migrate:     cfg.Storage.Migrate,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close preference store", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := site.NewManager(doc, site.ManagerOptions{
		Store:  store,
		Logger: log,
		Capabilities: site.Capabilities{
			IntersectionObserver: cfg.Client.IntersectionObserver,
			PerformanceObserver:  cfg.Client.PerformanceObserver,
		},
		Timings: site.Timings{
			IdleTimeout:    cfg.Timings.IdleTimeout,
			AnnounceClear:  cfg.Timings.AnnounceClear,
			MenuFocusDelay: cfg.Timings.MenuFocusDelay,
			SlowThreshold:  cfg.Timings.SlowThreshold,
		},
		TTL: cfg.Session.TTL,
	})
	go sessions.Run(ctx, cfg.Session.SweepInterval)

	if cfg.Document.Watch {
		watcher, err := services.NewDocumentWatcher(cfg.Document.Path, cfg.Document.Debounce, sessions.SetSource,
			logging.Component(log, "watcher"))
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Document.Path, err)
		}
		go watcher.Run(ctx)
		log.Info("watching document", "path", cfg.Document.Path)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := handlers.NewRouter(handlers.RouterOptions{
		Sessions:       sessions,
		Logger:         log,
		Registry:       registry,
		SecureCookies:  cfg.Server.SecureCookies,
		OriginPatterns: cfg.Server.AllowedOrigins,
		SlowThreshold:  cfg.Timings.SlowThreshold,
		RequestLog:     cfg.Server.RequestLog,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Addr(), "storage", cfg.Storage.Kind, "version", version)
		errCh <- e.Start(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.Any("error", err))
		return err
	}
	return nil
}
