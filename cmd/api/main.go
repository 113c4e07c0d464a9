package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/flagsapp/flags-backend/api/middleware"
	"github.com/flagsapp/flags-backend/api/routes"
	internalauth "github.com/flagsapp/flags-backend/internal/auth"
	"github.com/flagsapp/flags-backend/internal/feed"
	"github.com/flagsapp/flags-backend/internal/hottakes"
	"github.com/flagsapp/flags-backend/internal/matching"
	"github.com/flagsapp/flags-backend/internal/profiles"
	"github.com/flagsapp/flags-backend/internal/questions"
	"github.com/flagsapp/flags-backend/internal/responses"
	"github.com/flagsapp/flags-backend/internal/seed"
	"github.com/flagsapp/flags-backend/internal/users"
	pkgauth "github.com/flagsapp/flags-backend/pkg/auth"
	"github.com/flagsapp/flags-backend/pkg/config"
	"github.com/flagsapp/flags-backend/pkg/db"
	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/migrate"
	"github.com/flagsapp/flags-backend/pkg/redis"
	"github.com/flagsapp/flags-backend/pkg/security"
)

type gormPinger struct {
	gdb *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	return db.Ping(ctx, p.gdb)
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	gdb, err := db.Connect(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to connect to database", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		sqlDB, err := gdb.DB()
		if err != nil {
			logg.Error(context.Background(), "failed to unwrap database handle", err)
			os.Exit(1)
		}
		if err := migrate.Up(context.Background(), sqlDB); err != nil {
			logg.Error(context.Background(), "failed to run migrations", err)
			os.Exit(1)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.Connect(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to connect to redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	userRepo := users.NewRepository(gdb)
	hotTakeRepo := hottakes.NewRepository(gdb)
	responseRepo := responses.NewRepository(gdb)
	questionRepo := questions.NewRepository(gdb)
	answerRepo := questions.NewAnswerRepository(gdb)

	hasher := security.NewHasher(cfg.Password)
	tokenIssuer := pkgauth.NewTokenIssuer(cfg.JWT)

	authService, err := internalauth.NewService(internalauth.ServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Issuer:   tokenIssuer,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{UserRepo: userRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profiles.ServiceParams{
		UserRepo:     userRepo,
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	hotTakeService, err := hottakes.NewService(hottakes.ServiceParams{HotTakeRepo: hotTakeRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create hot take service", err)
		os.Exit(1)
	}

	feedService, err := feed.NewService(feed.ServiceParams{HotTakeRepo: hotTakeRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create feed service", err)
		os.Exit(1)
	}

	responseService, err := responses.NewService(responses.ServiceParams{
		ResponseRepo: responseRepo,
		HotTakeRepo:  hotTakeRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create response service", err)
		os.Exit(1)
	}

	questionService, err := questions.NewService(questions.ServiceParams{
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create question service", err)
		os.Exit(1)
	}

	matchingService, err := matching.NewService(matching.ServiceParams{
		UserRepo:     userRepo,
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		ResponseRepo: responseRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create matching service", err)
		os.Exit(1)
	}

	seeder, err := seed.NewSeeder(seed.SeederParams{
		UserRepo:     userRepo,
		HotTakeRepo:  hotTakeRepo,
		QuestionRepo: questionRepo,
		Hasher:       hasher,
		Logger:       logg,
		AdminConfig:  cfg.Admin,
		SeedConfig:   cfg.Seed,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create seeder", err)
		os.Exit(1)
	}
	if err := seeder.Run(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed startup data", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Config: cfg,
		Logger: logg,

		DB: gormPinger{gdb: gdb},

		TokenIssuer:  tokenIssuer,
		UserVerifier: userService,
		RateLimiter:  middleware.NewAuthRateLimiter(redisClient, cfg.AuthRateLimit, logg),

		AuthService:     authService,
		UserService:     userService,
		ProfileService:  profileService,
		HotTakeService:  hotTakeService,
		FeedService:     feedService,
		ResponseService: responseService,
		QuestionService: questionService,
		MatchingService: matchingService,
	}
	if redisClient != nil {
		deps.Cache = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	startCtx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(startCtx, "api server stopped")
	}
}
