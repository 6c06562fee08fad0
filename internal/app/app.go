package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/friend"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/membership"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/movie"
	"github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/request"
	userrepo "github.com/heartmarshall/moviedb-backend/internal/adapter/kvrepo/user"
	"github.com/heartmarshall/moviedb-backend/internal/auth"
	"github.com/heartmarshall/moviedb-backend/internal/config"
	"github.com/heartmarshall/moviedb-backend/internal/kv"
	authsvc "github.com/heartmarshall/moviedb-backend/internal/service/auth"
	"github.com/heartmarshall/moviedb-backend/internal/service/friendrequest"
	"github.com/heartmarshall/moviedb-backend/internal/service/friendship"
	usersvc "github.com/heartmarshall/moviedb-backend/internal/service/user"
	"github.com/heartmarshall/moviedb-backend/internal/service/watchlist"
	"github.com/heartmarshall/moviedb-backend/internal/transport/middleware"
	"github.com/heartmarshall/moviedb-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration from configPath
// (empty means CONFIG_PATH or ./config.yaml), opens the configured store
// and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store_driver", cfg.Store.Driver),
	)

	store, err := OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close store", slog.String("error", err.Error()))
		}
	}()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(cfg, store, limiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// NewHandler builds repositories, services and the HTTP routing tree over
// store. It does not take ownership of store or limiter.
func NewHandler(cfg *config.Config, store kv.Store, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	txm := kv.NewTxManager(store)

	// Repositories are stateless; the transaction travels on the context.
	movieRepo := movie.New()
	membershipRepo := membership.New()
	friendRepo := friend.New()
	requestRepo := request.New()
	userRepo := userrepo.New()

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	catalogService := newCatalogService(cfg.TMDB, movieRepo, txm, logger)
	watchlistService := watchlist.NewService(logger, membershipRepo, movieRepo, catalogService, txm)
	friendshipService := friendship.NewService(logger, friendRepo, userRepo, txm)
	requestService := friendrequest.NewService(logger, requestRepo, friendshipService, userRepo, txm)
	authService := authsvc.NewService(logger, userRepo, txm, hasher, jwtMgr)
	userService := usersvc.NewService(logger, userRepo, txm)

	// Auth runs before Logger so request lines carry the user id.
	api := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtMgr),
		middleware.Logger(logger),
	)

	return rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(store, cfg.Store.Driver, BuildVersion()),
		Auth:    rest.NewAuthHandler(authService, userService, logger),
		Movie:   rest.NewMovieHandler(catalogService, logger),
		List:    rest.NewListHandler(watchlistService, logger),
		Friend:  rest.NewFriendHandler(friendshipService, requestService, logger),
		Metrics: promhttp.Handler(),
	}, api, limiter.Limit(cfg.RateLimit.AuthPerMinute))
}
