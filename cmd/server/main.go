package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/totpgate/pkg/auth"
	"github.com/dmitrymomot/totpgate/pkg/clientip"
	"github.com/dmitrymomot/totpgate/pkg/config"
	"github.com/dmitrymomot/totpgate/pkg/directory"
	"github.com/dmitrymomot/totpgate/pkg/gateway"
	"github.com/dmitrymomot/totpgate/pkg/httpserver"
	"github.com/dmitrymomot/totpgate/pkg/logger"
	"github.com/dmitrymomot/totpgate/pkg/qrcode"
	"github.com/dmitrymomot/totpgate/pkg/redis"
	"github.com/dmitrymomot/totpgate/pkg/requestid"
	"github.com/dmitrymomot/totpgate/pkg/session"
	"github.com/dmitrymomot/totpgate/pkg/totp"
	"github.com/dmitrymomot/totpgate/pkg/validator"
)

//go:embed public
var publicFS embed.FS

const readinessTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "totpgate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		logCfg     logger.Config
		httpCfg    httpserver.Config
		gatewayCfg gateway.Config
		storageCfg directory.Config
		redisCfg   redis.Config
		sessionCfg session.Config
		totpCfg    totp.Config
		qrCfg      qrcode.Config
		ipCfg      clientip.Config
	)
	if err := errors.Join(
		config.Load(&logCfg),
		config.Load(&httpCfg),
		config.Load(&gatewayCfg),
		config.Load(&storageCfg),
		config.Load(&redisCfg),
		config.Load(&sessionCfg),
		config.Load(&totpCfg),
		config.Load(&qrCfg),
		config.Load(&ipCfg),
	); err != nil {
		return err
	}

	log, err := logger.NewFromConfig(logCfg, logger.WithContextExtractors(
		requestid.LogExtractor,
		clientip.LogExtractor,
		gateway.LogExtractor,
	))
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	backend, err := openStorage(ctx, storageCfg, redisCfg, sessionCfg, totpCfg)
	if err != nil {
		return err
	}
	defer backend.close(log)
	log.InfoContext(ctx, "storage ready", slog.String("driver", storageCfg.Driver))

	renderer, err := qrcode.NewRendererFromConfig(qrCfg)
	if err != nil {
		return err
	}

	sessions := session.NewRegistryFromConfig(sessionCfg, backend.sessions)
	service := auth.NewService(
		backend.users,
		sessions,
		totp.NewEngineFromConfig(totpCfg),
		renderer,
		auth.WithLogger(log.With(logger.Component("auth"))),
	)
	dispatcher := auth.NewDispatcher(service,
		auth.WithDispatcherLogger(log.With(logger.Component("dispatcher"))),
		auth.WithValidator(validator.MustNew()),
	)
	gw := gateway.NewFromConfig(gatewayCfg, dispatcher,
		gateway.WithLogger(log.With(logger.Component("gateway"))),
	)

	public, err := fs.Sub(publicFS, "public")
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.NewFromConfig(ipCfg).Middleware,
		middleware.Recoverer,
	)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, readinessTimeout, backend.checks...))
	r.Get("/ws", gw.ServeHTTP)
	r.Route("/api/session", func(r chi.Router) {
		r.Use(sessions.RequireAuth)
		r.Get("/", currentSession)
		r.Delete("/", revokeSession(sessions, log))
	})
	r.Handle("/*", http.FileServer(http.FS(public)))

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log.With(logger.Component("http"))),
		httpserver.WithOnShutdown(gw.Close),
	)

	return srv.Run(ctx, r)
}

type storage struct {
	users    directory.Store
	sessions session.Store
	checks   []httpserver.Check
	closers  []func() error
}

func (s *storage) close(log *slog.Logger) {
	for _, c := range s.closers {
		if err := c(); err != nil {
			log.Error("failed to close storage", logger.Error(err))
		}
	}
}

// openStorage builds the user directory and session store for the configured driver.
func openStorage(ctx context.Context, cfg directory.Config, redisCfg redis.Config, sessionCfg session.Config, totpCfg totp.Config) (*storage, error) {
	switch cfg.Driver {
	case directory.DriverMemory:
		sessions := session.NewMemoryStore(sessionCfg.CleanupInterval)
		return &storage{
			users:    directory.NewMemoryStore(),
			sessions: sessions,
			closers:  []func() error{sessions.Close},
		}, nil

	case directory.DriverRedis:
		opts := []directory.RedisOption{directory.WithKeyPrefix(cfg.KeyPrefix)}
		if totpCfg.EncryptionKey != "" {
			cipher, err := totp.NewSecretCipher(totpCfg)
			if err != nil {
				return nil, err
			}
			opts = append(opts, directory.WithSecretCipher(cipher))
		}

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		return &storage{
			users:    directory.NewRedisStore(client, opts...),
			sessions: session.NewRedisStore(client, cfg.KeyPrefix+"session:"),
			checks:   []httpserver.Check{redis.Healthcheck(client)},
			closers:  []func() error{client.Close},
		}, nil
	}

	return nil, errors.Join(directory.ErrUnknownDriver, fmt.Errorf("driver %q", cfg.Driver))
}

func currentSession(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"identity":  s.Identity,
		"createdAt": s.CreatedAt,
	})
}

func revokeSession(sessions *session.Registry, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.FromContext(r.Context())
		if err := sessions.Revoke(r.Context(), s.Token); err != nil {
			log.ErrorContext(r.Context(), "failed to revoke session", logger.Identity(s.Identity), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
