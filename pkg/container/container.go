package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"gameguide-backend/internal/config"
	infraCache "gameguide-backend/internal/infrastructure/cache"
	"gameguide-backend/internal/infrastructure/llm"
	"gameguide-backend/internal/infrastructure/queue"
	"gameguide-backend/pkg/jwt"
	"gameguide-backend/pkg/kv"

	// Guide domain
	guideHandler "gameguide-backend/internal/domains/guide/handler"
	guideJob "gameguide-backend/internal/domains/guide/job"
	guideRepo "gameguide-backend/internal/domains/guide/repository"
	guideService "gameguide-backend/internal/domains/guide/service"

	// Admin domain
	adminHandler "gameguide-backend/internal/domains/admin/handler"
	adminRepo "gameguide-backend/internal/domains/admin/repository"
	adminService "gameguide-backend/internal/domains/admin/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph, shared by cmd/api,
// cmd/worker and cmd/guidectl.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config

	// One client per distinct logical DB; stores sharing a DB share a client.
	redisClients map[int]*redis.Client

	GuideStore    *infraCache.RedisStore // guide:*, slug:*
	MetadataStore *infraCache.RedisStore // recent:guides
	AdminStore    *infraCache.RedisStore // admin:config, session:*

	AsynqClient *asynq.Client // nil unless VIEW_RECORDER=queue
	JWTManager  *jwt.Manager
	Generator   llm.Generator

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	GuideRepo   guideRepo.GuideRepository
	RecentIndex guideRepo.RecentIndex
	ConfigRepo  adminRepo.ConfigRepository
	SessionRepo adminRepo.SessionRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	ViewRecorder guideService.ViewRecorder
	GuideService *guideService.GuideService
	AdminService *adminService.AdminService

	// ========================================
	// HANDLER LAYER
	// ========================================
	GuideHandler *guideHandler.GuideHandler
	AdminHandler *adminHandler.AdminHandler

	// ========================================
	// JOB HANDLERS (cmd/worker)
	// ========================================
	RecordViewJob      *guideJob.RecordViewHandler
	ReconcileRecentJob *guideJob.ReconcileRecentHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the whole graph in order:
// config → stores → repositories → services → handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewContainerWithConfig(cfg)
}

// NewContainerWithConfig builds the graph from an already loaded config.
func NewContainerWithConfig(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config:       cfg,
		redisClients: make(map[int]*redis.Client),
	}

	// ========================================
	// STEP 1: REDIS STORES
	// ========================================
	c.GuideStore = infraCache.NewRedisStore(c.redisClient(cfg.Redis.GuidesDB), "guides")
	c.MetadataStore = infraCache.NewRedisStore(c.redisClient(cfg.Redis.MetadataDB), "metadata")
	c.AdminStore = infraCache.NewRedisStore(c.redisClient(cfg.Redis.AdminDB), "admin")

	// Unreachable Redis is not fatal at boot: requests fail with 500 until it comes back.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, store := range []*infraCache.RedisStore{c.GuideStore, c.MetadataStore, c.AdminStore} {
		if err := store.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
		}
	}

	// ========================================
	// STEP 2: SHARED CLIENTS
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.Session.Secret)

	generator, err := llm.NewGenerator(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to init generator: %w", err)
	}
	c.Generator = generator

	if cfg.Worker.ViewRecorder == "queue" {
		c.AsynqClient = queue.NewClient(cfg.Redis)
	}

	// ========================================
	// STEP 3: REPOSITORIES / SERVICES / HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()
	c.initJobs()

	log.Info().
		Str("llm_provider", generator.Provider()).
		Str("view_recorder", cfg.Worker.ViewRecorder).
		Msg("DI container initialized")

	return c, nil
}

func (c *Container) redisClient(db int) *redis.Client {
	if client, ok := c.redisClients[db]; ok {
		return client
	}
	client := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, db)
	c.redisClients[db] = client
	return client
}

func (c *Container) initRepositories() {
	c.GuideRepo = guideRepo.NewGuideRepository(c.GuideStore)
	c.RecentIndex = guideRepo.NewRecentIndex(c.MetadataStore)
	c.ConfigRepo = adminRepo.NewConfigRepository(c.AdminStore)
	c.SessionRepo = adminRepo.NewSessionRepository(c.AdminStore)
}

func (c *Container) initServices() {
	if c.AsynqClient != nil {
		c.ViewRecorder = guideService.NewQueueViewRecorder(c.AsynqClient)
	} else {
		c.ViewRecorder = guideService.NewInlineViewRecorder(c.GuideRepo)
	}

	c.AdminService = adminService.NewAdminService(
		c.ConfigRepo,
		c.SessionRepo,
		c.JWTManager,
		c.GuideRepo,
		c.RecentIndex,
		adminService.WithSessionTTL(c.Config.Session.TTL),
		adminService.WithSiteName(c.Config.Content.SiteName),
	)

	// The admin service doubles as the settings source for generation and monetization.
	c.GuideService = guideService.NewGuideService(
		c.GuideRepo,
		c.RecentIndex,
		c.AdminService,
		c.Generator,
		guideService.NewPromptBuilder(c.Config.Content.Language),
		c.ViewRecorder,
		guideService.WithMaxQueryLength(c.Config.Content.MaxQueryLen),
	)
}

func (c *Container) initHandlers() {
	c.GuideHandler = guideHandler.NewGuideHandler(c.GuideService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService)
}

func (c *Container) initJobs() {
	c.RecordViewJob = guideJob.NewRecordViewHandler(c.GuideRepo)
	c.ReconcileRecentJob = guideJob.NewReconcileRecentHandler(c.GuideRepo, c.RecentIndex)
}

// Stores lists every namespace, for health checks.
func (c *Container) Stores() map[string]kv.Store {
	return map[string]kv.Store{
		"guides":   c.GuideStore,
		"metadata": c.MetadataStore,
		"admin":    c.AdminStore,
	}
}

// Cleanup drains background view writes, then closes connections.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.ViewRecorder != nil {
		c.ViewRecorder.Wait()
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	for db, client := range c.redisClients {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Int("db", db).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
