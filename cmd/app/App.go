package app

import (
	"context"
	"mgMessenger/configs"
	"mgMessenger/internal/handlers"
	"mgMessenger/internal/realtime"
	"mgMessenger/internal/repositories"
	"mgMessenger/internal/servers/database"
	"mgMessenger/internal/servers/http"
	"mgMessenger/internal/services"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	app.initializeRedis()

	presenceService := services.NewPresenceService(app.redis)
	hub := realtime.NewHub(realtime.WithPresence(presenceService))

	db := database.GetDB(app.configs)
	authRepo := repositories.NewAuthenticationRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	userRepo := repositories.NewUserRepository(db)

	minioService := services.NewMinioService(app.configs)
	fileManagerService := services.NewFileManagerService(minioService)

	authService := services.NewAuthenticationService(authRepo, app.configs)
	chatService := services.NewChatService(authRepo, chatRepo, fileManagerService, hub, presenceService)
	groupService := services.NewGroupService(authRepo, groupRepo, hub)
	callService := services.NewCallService(authRepo, hub)
	userService := services.NewUserService(authRepo, userRepo)

	restHandler := handlers.NewRestHandler(
		authService,
		chatService,
		groupService,
		callService,
		presenceService,
		userService,
		fileManagerService,
	)
	socketHandler := handlers.NewSocketHandler(hub, authService, app.clientConfig())
	metricsHandler := handlers.NewMetricsHandler(hub)

	http.NewHttpServer(
		app.ctx,
		app.configs,
		restHandler,
		socketHandler,
		metricsHandler,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.configs.Viper.GetString("redis.address"),
		Password: app.configs.Viper.GetString("redis.password"),
		DB:       app.configs.Viper.GetInt("redis.db"),
	})
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}

func (app *App) clientConfig() realtime.ClientConfig {
	v := app.configs.Viper
	return realtime.ClientConfig{
		WriteWait:      v.GetDuration("websocket.write_wait"),
		PongWait:       v.GetDuration("websocket.pong_wait"),
		PingPeriod:     v.GetDuration("websocket.ping_period"),
		MaxMessageSize: v.GetInt64("websocket.max_message_size"),
		SendBufferSize: v.GetInt("websocket.send_buffer_size"),
	}
}
