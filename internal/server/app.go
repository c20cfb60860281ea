// Package server initializes and runs the AutoTransformers site server.
// It wires the user store, session registry, rate limiter, and cookie signer
// into the HTTP front and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/autotransformers/site/internal/common"
	"github.com/autotransformers/site/internal/logging"
	"github.com/autotransformers/site/internal/server/auth"
	"github.com/autotransformers/site/internal/server/config"
	"github.com/autotransformers/site/internal/server/httpapi"
	"github.com/autotransformers/site/internal/server/ratelimit"
	"github.com/autotransformers/site/internal/server/sessions"
	"github.com/autotransformers/site/internal/server/users"
)

// generatedSecretSize is the number of random bytes behind a per-process
// session secret when none is configured.
const generatedSecretSize = 32

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	secret := c.SessionSecret
	if secret == "" {
		generated, err := common.MakeRandHexString(generatedSecretSize)
		if err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		secret = generated
		logger.Warn(context.Background(),
			"no session secret configured, generated a per-process one; sessions will not survive a restart")
	}

	repo := users.NewFileRepository(c.UsersFile)
	registry := sessions.NewRegistry(c.SessionTTL)

	service, err := users.NewService(repo, registry)
	if err != nil {
		return nil, fmt.Errorf("init user service: %w", err)
	}

	limiter := ratelimit.New(c.RateLimitWindow, c.RateLimitMax)
	signer := auth.NewCookieSigner(secret)

	handler := httpapi.NewHandler(service, signer, limiter, logger,
		c.SessionTTL, c.IsProduction(), c.MaxBodyBytes)
	srv := httpapi.NewServer(c.Addr, handler, c.StaticDir, logger)

	return &App{config: c, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "starting app", "env", app.config.Env, "addr", app.config.Addr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
