package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"school-directory/internal/config"
	schoolHandler "school-directory/internal/domains/school/handler"
	schoolRepo "school-directory/internal/domains/school/repository"
	schoolService "school-directory/internal/domains/school/service"
	infraCache "school-directory/internal/infrastructure/cache"
	"school-directory/internal/infrastructure/database"
	"school-directory/internal/infrastructure/storage"
	"school-directory/internal/upload"
	"school-directory/internal/web"
	"school-directory/pkg/cache"
)

// Container holds every long-lived dependency of the application.
// It is the root of the dependency graph: config first, then
// infrastructure, then repositories, services and handlers.
// All fields are singletons living for the process lifetime.
type Container struct {
	// Infrastructure layer
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Storage storage.ImageStorage
	Uploads *upload.Handler

	// Repository layer
	SchoolRepo schoolRepo.Repository

	// Service layer
	SchoolService schoolService.Service

	// Handler layer
	SchoolHandler *schoolHandler.SchoolHandler
	WebHandler    *web.Handler

	// closers run in reverse order on Cleanup
	closers []func()
}

// NewContainer builds the whole dependency graph in order.
// A failure at any step aborts startup.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing container...")

	c := &Container{}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (environment: %s)", cfg.App.Environment)

	// 2. Database: create the database if missing, connect, migrate
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.EnsureDatabase(ctx, dbConfig); err != nil {
		return nil, fmt.Errorf("failed to ensure database: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	c.closers = append(c.closers, db.Close)

	if err := db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("✅ Database ready")

	// 3. Cache: Redis when enabled, otherwise a no-op stand-in
	if cfg.Cache.Enabled {
		redisCache := infraCache.NewRedisCache(cfg.Cache.Host, cfg.Cache.Password, cfg.Cache.DB)
		if err := redisCache.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Cache = redisCache
		c.closers = append(c.closers, func() { _ = redisCache.Close() })
		log.Println("✅ Redis cache connected")
	} else {
		c.Cache = cache.NewNoop()
		log.Println("ℹ️  Cache disabled, using no-op cache")
	}

	// 4. Image storage
	switch cfg.Storage.Driver {
	case "minio":
		minioStorage, err := storage.NewMinIOStorage(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize minio storage: %w", err)
		}
		c.Storage = minioStorage
		log.Printf("✅ MinIO storage ready (bucket: %s)", cfg.Storage.MinIOBucket)
	default:
		c.Storage = storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.PublicPath)
		log.Printf("✅ Local storage ready (dir: %s)", cfg.Upload.Dir)
	}
	c.Uploads = upload.NewHandler(c.Storage, cfg.Upload.MaxFileSize)

	// 5. School domain: repository → service → handler
	c.SchoolRepo = schoolRepo.NewPostgresRepository(db.Pool)
	c.SchoolService = schoolService.NewSchoolService(c.SchoolRepo, c.Uploads, c.Cache)
	c.SchoolHandler = schoolHandler.NewSchoolHandler(c.SchoolService)

	// 6. Web frontend
	webHandler, err := web.NewHandler(c.SchoolService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web handler: %w", err)
	}
	c.WebHandler = webHandler

	log.Println("✅ Container initialized")
	return c, nil
}

// Cleanup releases infrastructure resources in reverse creation order.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container...")
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
