package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"socialfeed/internal/config"
	"socialfeed/internal/handler"
	"socialfeed/internal/hub"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the socialfeed HTTP API.

The server opens (and migrates) the configured store, then listens until
interrupted. SIGINT and SIGTERM trigger a graceful shutdown.

Example:
  socialfeed serve
  socialfeed serve --addr :9000 --config ./socialfeed.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			if addr != "" {
				env.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, env.cfg, env.store, env.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")

	return cmd
}

// newHTTPHandler wires services, the SSE hub and middleware. The hub and the
// event relay run until ctx is done.
func newHTTPHandler(ctx context.Context, cfg *config.Config, store repository.Store, log logrus.FieldLogger) http.Handler {
	eventBus := service.NewEventBus()

	sseHub := hub.New(log)
	go sseHub.Run(ctx)

	eventChan := make(chan service.Event, 100)
	unsubscribe := eventBus.Subscribe(eventChan)
	go func() {
		hub.Relay[service.Event](ctx, sseHub, eventChan)
		unsubscribe()
	}()

	postSvc := service.NewPostService(store, eventBus,
		service.WithLogger(log),
		service.WithPolicy(publicationPolicy(cfg.Publication)),
		service.WithPageDefaults(pageDefaults(cfg.Pagination)),
	)
	userSvc := service.NewUserService(store, eventBus, log,
		service.WithUserPageDefaults(pageDefaults(cfg.Pagination)),
	)

	var auth *handler.Authenticator
	if cfg.AuthEnabled() {
		auth = handler.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience)
	}

	mux := handler.NewRouter(handler.RouterConfig{
		Posts:   postSvc,
		Users:   userSvc,
		Events:  sseHub,
		Auth:    auth,
		BaseURL: cfg.Server.BaseURL,
		Log:     log,
	})

	middleware := []handler.Middleware{
		handler.Recover(log),
		handler.RequestLogger(log),
		handler.CORS(cfg.Server.CORSOrigins),
	}
	if cfg.Server.RequestsPerSecond > 0 {
		limiter := handler.NewRateLimiter(cfg.Server.RequestsPerSecond, cfg.Server.Burst)
		middleware = append(middleware, limiter.Middleware)
	}

	return handler.Chain(mux, middleware...)
}

func runServer(ctx context.Context, cfg *config.Config, store repository.Store, log logrus.FieldLogger) error {
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()

	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     newHTTPHandler(hubCtx, cfg, store, log),
		ReadTimeout: 10 * time.Second,
		// No write timeout: SSE responses stay open
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	// Close SSE streams first so Shutdown does not wait on them
	cancelHub()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Or(10*time.Second))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
