package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/minefield-dev/minefield-server/internal/config"
	"github.com/minefield-dev/minefield-server/internal/database"
	"github.com/minefield-dev/minefield-server/internal/middleware"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	jwt        *config.JWT
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

// handler mounts the router under basePath, so the service can sit behind a
// path-routing proxy without rewrites.
func (a *App) handler(basePath string) http.Handler {
	if basePath == "" {
		return a.router
	}
	return http.StripPrefix(basePath, a.router)
}

// Start connects to the database, wires the routes and serves until ctx is
// cancelled, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	db, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()

	a.db = db

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	a.jwt = jwt

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}

	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}

	a.ws = ws

	a.loadRoutes()

	addr := config.Addr()
	basePath := config.BasePath()
	server := &http.Server{
		Addr: addr,
		Handler: middleware.Wrap(
			a.handler(basePath),
			middleware.Logging(a.logger),
			middleware.Cors(),
			middleware.Auth(cookies),
		),
	}

	a.logger.Info(
		"server listening",
		slog.String("addr", addr),
		slog.String("basePath", basePath),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	return g.Wait()
}
