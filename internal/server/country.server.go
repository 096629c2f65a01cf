package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"country-service/internal/config"
	hgrpc "country-service/internal/handler/grpc"
	hrest "country-service/internal/handler/rest"
	mw "country-service/internal/middleware"
	"country-service/internal/repository"
	"country-service/internal/router"
	"country-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

type Server struct {
	HTTP *http.Server

	grpc   *grpc.Server
	health *hgrpc.HealthHandler
	rdb    *redis.Client
	cfg    config.AppConfig
	logger *zap.Logger
}

// NewServer loads the dataset and wires the HTTP and gRPC servers.
// A dataset that cannot be loaded is returned as an error.
func NewServer(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	store, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("country dataset loaded", zap.Int("countries", store.Len()))

	s := &Server{cfg: cfg, logger: logger}

	countryUC := usecase.NewCountryUsecase(store)
	countryHandler := hrest.NewCountryHandler(countryUC, logger)

	opts := router.Options{
		Field:       cfg.Field,
		CORSEnabled: cfg.CORSEnabled,
		Logger:      logger,
	}
	if cfg.RateLimitEnabled() {
		s.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       0,
		})
		opts.RateLimit = mw.RateLimiter(s.rdb, mw.RateLimitOptions{
			Limit:         cfg.RateLimit,
			Window:        cfg.RateWindow,
			BlockDuration: cfg.RateBlock,
			KeyPrefix:     "country:" + string(cfg.Field),
		}, logger)
	}

	// --- HTTP routes ---
	r := chi.NewRouter()
	router.SetupRoutes(r, countryHandler, opts)

	s.HTTP = &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	// --- gRPC health ---
	if cfg.GRPCAddr != "" {
		s.grpc = grpc.NewServer()
		s.health = hgrpc.NewHealthHandler()
		s.health.Register(s.grpc)
	}
	return s, nil
}

// Start serves HTTP (and gRPC when configured). It returns nil once the HTTP
// server is shut down, or the first serve error.
func (s *Server) Start() error {
	errCh := make(chan error, 2)

	if s.grpc != nil {
		lis, err := net.Listen("tcp", s.cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.cfg.GRPCAddr, err)
		}
		s.health.SetServing(true)
		go func() {
			s.logger.Info("gRPC health server listening", zap.String("addr", s.cfg.GRPCAddr))
			if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	go func() {
		s.logger.Info("country service HTTP server starting",
			zap.String("addr", s.cfg.HTTPAddr),
			zap.String("field", string(s.cfg.Field)),
			zap.Bool("cors", s.cfg.CORSEnabled))
		err := s.HTTP.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- fmt.Errorf("http: %w", err)
	}()

	return <-errCh
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.health != nil {
		s.health.Shutdown()
	}
	err := s.HTTP.Shutdown(ctx)
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
	if s.rdb != nil {
		if cerr := s.rdb.Close(); cerr != nil {
			s.logger.Warn("closing redis client", zap.Error(cerr))
		}
	}
	return err
}

func loadStore(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (*repository.Store, error) {
	var src repository.Source
	switch {
	case cfg.DatabaseURL != "":
		pool, err := repository.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		// The pool is only needed for the initial read.
		defer pool.Close()
		src = repository.NewPostgresSource(pool)
	case cfg.DataURL != "":
		src = repository.NewRemoteSource(cfg.DataURL, logger)
	case cfg.DataFile != "":
		src = repository.FileSource{Path: cfg.DataFile}
	default:
		src = repository.EmbeddedSource{}
	}

	logger.Info("loading country dataset", zap.String("source", src.Name()))
	return repository.LoadStore(ctx, src)
}
