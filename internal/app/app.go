package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	repo       *repository.Queries
	cookies    *config.Cookies
	ws         *config.WebSocket
	sessionTTL time.Duration
	debug      bool
}

func New(logger *slog.Logger) *App {
	router := http.NewServeMux()

	app := &App{
		logger: logger,
		router: router,
		repo:   repository.New(),
		debug:  config.Development(),
	}

	return app
}

func (a *App) configure() error {
	ttl, err := config.SessionTTL()
	if err != nil {
		return err
	}
	a.sessionTTL = ttl

	j, err := config.NewJWT(ttl)
	if err != nil {
		return fmt.Errorf("unable to configure jwt: %w", err)
	}

	cookies, err := config.NewCookies(j)
	if err != nil {
		return fmt.Errorf("unable to configure cookies: %w", err)
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return fmt.Errorf("unable to configure websocket: %w", err)
	}
	a.ws = ws

	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Session(a.logger, a.cookies),
		middleware.Cors(config.AllowedOrigins()),
		middleware.Logging(a.logger),
	)
}

// Start serves until ctx is canceled or the listener fails.
func (a *App) Start(ctx context.Context) error {
	if err := a.configure(); err != nil {
		return err
	}

	a.loadRoutes(config.BasePath())

	port := config.Port()
	server := &http.Server{
		Addr:    port,
		Handler: a.Handler(),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		a.collectIdleSessions(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	a.logger.Info("server listening",
		slog.String("port", port),
		slog.String("base path", config.BasePath()),
		slog.Duration("session ttl", a.sessionTTL),
		slog.Bool("debug", a.debug),
	)

	return g.Wait()
}

func janitorInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Minute)
}

// collectIdleSessions evicts sessions untouched for longer than the
// session TTL until ctx is done.
func (a *App) collectIdleSessions(ctx context.Context) {
	ticker := time.NewTicker(janitorInterval(a.sessionTTL))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.evictIdle(ctx, now)
		}
	}
}

func (a *App) evictIdle(ctx context.Context, now time.Time) {
	n, err := a.repo.DeleteIdleSessions(ctx, now.Add(-a.sessionTTL))
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.logger.Error("unable to evict idle sessions", slog.Any("error", err))
		}
		return
	}
	if n > 0 {
		a.logger.Debug("evicted idle sessions",
			slog.Int("evicted", n),
			slog.Int("remaining", a.repo.Count()),
		)
	}
}
