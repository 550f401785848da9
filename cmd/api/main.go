package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mikiasgoitom/traceblog/internal/backend"
	"github.com/mikiasgoitom/traceblog/internal/domain/contract"
	handlerHttp "github.com/mikiasgoitom/traceblog/internal/handler/http"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/config"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/database"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/logger"
	passwordservice "github.com/mikiasgoitom/traceblog/internal/infrastructure/password_service"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/repository/memory"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/validator"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

type repositories struct {
	users    contract.IUserRepository
	blogs    contract.IBlogRepository
	comments contract.ICommentRepository
	likes    contract.ILikeRepository
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	appLogger := logger.NewAppLogger(logger.Options{Level: appConfig.GetLogLevel(), Format: appConfig.GetLogFormat()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Repositories
	repos := repositories{
		users:    memory.NewUserRepository(),
		blogs:    memory.NewBlogRepository(),
		comments: memory.NewCommentRepository(),
		likes:    memory.NewLikeRepository(),
	}
	if mongoURI := appConfig.GetMongoURI(); mongoURI != "" {
		mongoClient, err := database.NewMongoDBClient(ctx, mongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoClient.Disconnect(shutdownCtx)
		}()
		db := mongoClient.Database(appConfig.GetMongoDBName())
		likeRepo := mongodb.NewLikeRepository(db)
		if err := likeRepo.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create like indexes: %v", err)
		}
		repos = repositories{
			users:    mongodb.NewMongoUserRepository(db.Collection("users")),
			blogs:    mongodb.NewBlogRepository(db),
			comments: mongodb.NewCommentRepository(db),
			likes:    likeRepo,
		}
		appLogger.Infof("using MongoDB database %s", appConfig.GetMongoDBName())
	} else {
		appLogger.Infof("MONGODB_URI not set, using in-memory repositories")
	}

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher(bcrypt.DefaultCost)
	uuidGenerator := uuidgen.NewGenerator()
	jwtSecret := appConfig.GetJWTSecret()
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	jwtService := jwt.NewJWTService(jwt.NewJWTManager(jwtSecret, appConfig.GetAccessTokenExpiry()))

	blogService := backend.NewBlogService(repos.blogs, repos.comments, repos.likes, repos.users, uuidGenerator, appLogger)
	commentService := backend.NewCommentService(repos.blogs, repos.comments, repos.users, uuidGenerator, appLogger)
	authService := backend.NewAuthService(repos.users, hasher, jwtService, appLogger)

	if appConfig.GetSeedDemoData() {
		seeder := backend.NewSeeder(repos.users, repos.blogs, hasher, uuidGenerator, appLogger)
		if err := seeder.Seed(ctx, appConfig.GetDemoPhone(), appConfig.GetDemoPassword()); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Setup API routes
	router := gin.New()
	handlerHttp.NewRouter(blogService, commentService, authService, appLogger, appConfig.GetRateLimitPerSecond()).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + appConfig.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Infof("Server running on port %s", appConfig.GetPort())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	appLogger.Infof("server stopped")
}
