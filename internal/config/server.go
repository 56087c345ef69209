package config

import (
	"VyapaarAI/database/postgres"
	adminHandler "VyapaarAI/internal/api/admin/handler"
	adminService "VyapaarAI/internal/api/admin/service"
	checkoutHandler "VyapaarAI/internal/api/checkout/handler"
	checkoutRepository "VyapaarAI/internal/api/checkout/repository"
	checkoutService "VyapaarAI/internal/api/checkout/service"
	productHandler "VyapaarAI/internal/api/product/handler"
	productService "VyapaarAI/internal/api/product/service"
	salesHandler "VyapaarAI/internal/api/sales/handler"
	salesService "VyapaarAI/internal/api/sales/service"
	"VyapaarAI/internal/middleware"
	"VyapaarAI/pkg/bcrypt"
	"VyapaarAI/pkg/catalog"
	"VyapaarAI/pkg/detector"
	"VyapaarAI/pkg/redis"
	"VyapaarAI/pkg/s3"
	"VyapaarAI/pkg/storage"
	"VyapaarAI/pkg/utils"
	"VyapaarAI/pkg/workerpool"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type ServerOption func(*Server) error

type Server struct {
	engine          *fiber.App
	db              *sqlx.DB
	log             *logrus.Logger
	middleware      middleware.Middleware
	validator       *validator.Validate
	utils           utils.IUtils
	bcryptUtils     bcrypt.IBcrypt
	handlers        []handler
	redisServer     redis.IRedis
	s3Client        s3.ItfS3
	catalog         *catalog.Catalog
	storage         storage.IStorage
	detector        detector.IDetector
	pool            *workerpool.Pool
	checkoutService checkoutService.ICheckoutService
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if server.storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if server.detector == nil {
		return nil, fmt.Errorf("detector is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.bcryptUtils == nil {
		server.bcryptUtils = bcrypt.New()
	}
	if server.pool == nil {
		server.pool = workerpool.New(0)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects the sales ledger. Without DB_HOST the ledger stays
// disabled and the server still starts.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if errors.Is(err, postgres.ErrNotConfigured) {
			if s.log != nil {
				s.log.Info("DB_HOST not set, sales ledger disabled")
			}
			return nil
		}
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if err := postgres.Migrate(db); err != nil {
			db.Close()
			return err
		}

		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, ok, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if ok {
			s.s3Client = client
		}
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

// WithUtils caps /detect uploads at MAX_UPLOAD_MB when it is set.
func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.NewWithMaxFileSize(int64(EnvInt("MAX_UPLOAD_MB", 0)) << 20)
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

// WithCatalog loads the price list from path, or the built-in list when path is empty.
func WithCatalog(path string) ServerOption {
	return func(s *Server) error {
		if path == "" {
			s.catalog = catalog.Default()
			return nil
		}

		cat, err := catalog.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		s.catalog = cat
		return nil
	}
}

func WithStorage(root string) ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before storage")
		}
		if s.utils == nil {
			s.utils = utils.New()
		}

		store := storage.New(root, s.utils, s.log)
		if err := store.EnsureDirs(); err != nil {
			return fmt.Errorf("failed to prepare static directories: %w", err)
		}
		s.storage = store
		return nil
	}
}

func WithDetector(backend string) ServerOption {
	return func(s *Server) error {
		if s.catalog == nil || s.log == nil {
			return fmt.Errorf("catalog and logger must be initialized before detector")
		}

		d, err := NewDetector(backend, s.catalog, s.log)
		if err != nil {
			return err
		}
		s.detector = d
		return nil
	}
}

func WithWorkerPool(size int) ServerOption {
	return func(s *Server) error {
		s.pool = workerpool.New(size)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.engine.Use(s.middleware.NewCORSMiddleware())
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	// Checkout Domain
	checkoutRepo := checkoutRepository.New(s.db, s.log)
	s.checkoutService = checkoutService.NewCheckoutService(
		s.log, s.catalog, s.storage, s.utils, s.detector, s.pool,
		checkoutRepo, s.redisServer, s.s3Client,
		EnvDuration("BILL_CACHE_TTL", checkoutService.DefaultBillTTL),
	)
	checkoutHandlers := checkoutHandler.New(s.log, s.middleware, s.checkoutService,
		EnvDuration("DETECT_TIMEOUT", checkoutHandler.DefaultDetectTimeout))

	// Sales
	salesServices := salesService.NewSalesService(s.log, checkoutRepo, s.s3Client)
	salesHandlers := salesHandler.New(s.log, s.validator, s.middleware, salesServices)

	// Admin
	adminServices := adminService.NewAdminService(s.log, s.bcryptUtils,
		os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD_HASH"), adminService.DefaultTokenTTL)
	adminHandlers := adminHandler.New(s.log, s.validator, s.middleware, adminServices)

	// Products
	productServices := productService.NewProductService(s.catalog)
	productHandlers := productHandler.New(s.log, s.validator, s.middleware, productServices)

	s.setupHealthCheck()
	s.engine.Static("/static", s.storage.Root())
	checkoutHandlers.StartPublic(s.engine)

	s.handlers = append(s.handlers, checkoutHandlers, salesHandlers, adminHandlers, productHandlers)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	s.log.WithFields(logrus.Fields{
		"detector":    s.detector.Name(),
		"workers":     s.pool.Size(),
		"products":    s.catalog.Len(),
		"ledger":      s.db != nil,
		"bill_cache":  s.redisServer != nil,
		"s3_archive":  s.s3Client != nil,
		"static_root": s.storage.Root(),
	}).Info("Handlers registered")
}

// StartJanitor sweeps expired images until ctx is cancelled. It returns
// immediately when IMAGE_RETENTION is not set.
func (s *Server) StartJanitor(ctx context.Context) {
	retention := EnvDuration("IMAGE_RETENTION", 0)
	if retention <= 0 {
		return
	}

	every := retention / 4
	if every < time.Minute {
		every = time.Minute
	}
	go storage.Janitor(ctx, s.storage, s.log, every, retention)
}

func (s *Server) Run() error {
	port := EnvString("APP_PORT", "8000")
	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() {
	if err := s.engine.ShutdownWithTimeout(shutdownTimeout); err != nil {
		s.log.Errorf("Error shutting down server: %v", err)
	}

	if s.checkoutService != nil {
		s.checkoutService.Wait()
	}
	if err := s.detector.Close(); err != nil {
		s.log.Errorf("Error closing detector: %v", err)
	}
	if s.redisServer != nil {
		if err := s.redisServer.Close(); err != nil {
			s.log.Errorf("Error closing redis: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Errorf("Error closing database: %v", err)
		}
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
