package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/amazeing/maze-api/api"
	api_i "github.com/amazeing/maze-api/api/i"
	"github.com/amazeing/maze-api/api/identity"
	mazeapi "github.com/amazeing/maze-api/api/maze"
	"github.com/amazeing/maze-api/config"
	"github.com/amazeing/maze-api/infrastruture/cache"
	"github.com/amazeing/maze-api/infrastruture/repo"
	"github.com/amazeing/maze-api/infrastruture/token"
	"github.com/amazeing/maze-api/logger"
	"github.com/amazeing/maze-api/service"
	"github.com/amazeing/maze-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mazeCacheTTLSeconds = 3600

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	mazeCache      i.MazeCache
	userRepo       i.UserRepo
	mazeRepo       i.MazeRepo
	sessionManager i.MazeSessionManager
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	authController api_i.Controller
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func initMongo(ctx context.Context) {
	env := config.Envs()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", env.DBUser, env.DBPassword, env.DBHost, env.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	env := config.Envs()
	redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", env.RedisHost, env.RedisPort),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	var err error
	mazeCache, err = cache.NewRedisMazeCache(redisClient, mazeCacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis, maze cache initialized")
}

func initRepos() {
	env := config.Envs()
	userRepo = repo.NewUserRepo(mongoClient, env.DBName, "users")
	mazeRepo = repo.NewMazeRepo(mongoClient, env.DBName, "mazes")
	appLogger.Info("Repositories initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("MAZE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze session logger: %v", err))
		os.Exit(1)
	}

	sessionManager, err = service.NewMazeSessionManager(mazeCache, sessionLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze session manager initialized")
}

func initJWTTokenizer() {
	env := config.Envs()
	jwtTokenizer = token.NewJwtService(env.JWTSecret, env.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuth(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth service initialized")
}

func initMazeController() {
	controllerLogger, err := logger.New("MAZE-API", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller logger: %v", err))
		os.Exit(1)
	}

	mazeController, err = mazeapi.NewMazeController(sessionManager, mazeRepo, controllerLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	env := config.Envs()
	gin.SetMode(env.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", env.HostIP, env.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authorize(jwtTokenizer),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initRepos()
	initSessionManager()
	initJWTTokenizer()
	initAuthService()
	initMazeController()
	initRouter()

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
