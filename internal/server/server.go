package server

import (
	"time"

	"github.com/LittlJoey/pet-tracker-app/internal/activity"
	"github.com/LittlJoey/pet-tracker-app/internal/auth"
	"github.com/LittlJoey/pet-tracker-app/internal/config"
	"github.com/LittlJoey/pet-tracker-app/internal/location"
	"github.com/LittlJoey/pet-tracker-app/internal/pet"
	"github.com/LittlJoey/pet-tracker-app/internal/share"
	"github.com/LittlJoey/pet-tracker-app/internal/stream"
	"github.com/LittlJoey/pet-tracker-app/internal/track"
	"github.com/LittlJoey/pet-tracker-app/internal/walk"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
	Walks  *walk.Manager
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	pets := pet.NewService(s.DB)
	tracks := track.NewService(s.DB)
	activities := activity.NewService(s.DB)

	persister := walk.NewPersister(tracks, activities, stream.NewRefresher(s.Stream))
	watchCfg := location.WatchConfig{
		MinDistanceM: s.Cfg.SampleMinDistanceM,
		MinInterval:  time.Duration(s.Cfg.SampleMinIntervalMS) * time.Millisecond,
	}
	s.Walks = walk.NewManager(pets, persister, watchCfg, s.Stream)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	pet.RegisterRoutes(s.App.Group("/pets"), pets, jwtMiddleware)
	track.RegisterRoutes(s.App.Group("/tracks"), tracks, jwtMiddleware)
	activity.RegisterRoutes(s.App.Group("/activities"), activities, jwtMiddleware)
	walk.RegisterRoutes(s.App.Group("/walks"), s.Walks, jwtMiddleware)
	share.RegisterRoutes(s.App.Group("/share"), share.NewService(s.DB), s.Walks, pets, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
