package container

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/shared/ratelimit"
	"blog-backend/pkg/cache"
	pkgdb "blog-backend/pkg/database"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	// User domain
	userHandler "blog-backend/internal/domains/user/handler"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"

	// Tag domain
	tagHandler "blog-backend/internal/domains/tag/handler"
	tagRepo "blog-backend/internal/domains/tag/repository"
	tagService "blog-backend/internal/domains/tag/service"

	// Post domain
	postHandler "blog-backend/internal/domains/post/handler"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"

	// Search domain
	searchHandler "blog-backend/internal/domains/search/handler"
	searchRepo "blog-backend/internal/domains/search/repository"
	searchService "blog-backend/internal/domains/search/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application
// Thứ tự khởi tạo: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	TxManager   pkgdb.TxManager
	JWTManager  *jwt.Manager
	RateLimiter *ratelimit.KeyedLimiter

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo   userRepo.UserRepository
	TagRepo    tagRepo.TagRepository
	PostRepo   postRepo.PostRepository
	SearchRepo searchRepo.SearchRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService   userService.ServiceInterface
	TagService    tagService.ServiceInterface
	PostService   postService.ServiceInterface
	SearchService searchService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler   *userHandler.UserHandler
	TagHandler    *tagHandler.TagHandler
	PostHandler   *postHandler.PostHandler
	SearchHandler *searchHandler.SearchHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Initializing DI container", map[string]interface{}{"environment": cfg.App.Environment})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	if err := c.initDatabase(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	c.initCache()

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	if cfg.RateLimit.Enabled {
		c.RateLimiter = ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute)
	}

	// ========================================
	// STEP 4-6: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if c.Config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.Pool); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	c.TxManager = pkgdb.NewTxManager(db.Pool)
	return nil
}

// initCache: Redis lỗi không critical, fallback sang cache.Noop
func (c *Container) initCache() {
	cfg := c.Config.Redis
	c.Redis = infraCache.NewRedisClient(cfg.Host, cfg.Password, cfg.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Redis.Connect(ctx); err != nil {
		logger.Warn("Redis unavailable, caching disabled", map[string]interface{}{"error": err.Error()})
		c.Cache = cache.Noop{}
		return
	}

	c.Cache = infraCache.NewRedisCache(c.Redis.Client, "blog:")
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache, c.Config.Cache.UserTTL)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.SearchRepo = searchRepo.NewPostgresRepository(pool, searchRepo.Config{
		Language: c.Config.Search.Language,
		Weights:  c.Config.Search.RankWeights,
	})
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Config.Security.BcryptCost)
	c.TagService = tagService.NewTagService(c.TagRepo)
	c.PostService = postService.NewPostService(c.PostRepo, c.TagRepo, c.TxManager, c.Cache)
	c.SearchService = searchService.NewSearchService(c.SearchRepo, c.Cache, c.Config.Cache.PopularTagsTTL)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.SearchHandler = searchHandler.NewSearchHandler(c.SearchService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.RateLimiter != nil {
		c.RateLimiter.Stop()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("Container cleanup completed", nil)
}
