package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mgMessenger/configs"
	_ "mgMessenger/docs"
	"mgMessenger/internal/handlers"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx            context.Context
	config         *configs.Config
	router         *gin.Engine
	restHandler    *handlers.RestHandler
	socketHandler  *handlers.SocketHandler
	metricsHandler *handlers.MetricsHandler
}

func NewHttpServer(
	ctx context.Context,
	config *configs.Config,
	restHandler *handlers.RestHandler,
	socketHandler *handlers.SocketHandler,
	metricsHandler *handlers.MetricsHandler,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:            ctx,
			config:         config,
			restHandler:    restHandler,
			socketHandler:  socketHandler,
			metricsHandler: metricsHandler,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.router = hs.Router()

	server := hs.startServer()

	// Wait for interrupt signal to gracefully shut down the server
	hs.waitForShutdown(server)
}

// Router builds the gin engine with every route registered.
func (hs *HttpServer) Router() *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware(splitOrigins(hs.config.Viper.GetString("server.cors_origins"))))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", hs.metricsHandler.Metrics)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	hs.setupRestfulRoutes(api)
	hs.setupWebSocketRoutes(api)
	return router
}

func (hs *HttpServer) setupRestfulRoutes(api *gin.RouterGroup) {
	api.POST("/auth/login", hs.restHandler.Login)

	authenticated := api.Group("")
	authenticated.Use(hs.restHandler.MustAuthenticateMiddleware())
	{
		authenticated.POST("/auth/change-password", hs.restHandler.ChangePassword)
		authenticated.GET("/me", hs.restHandler.Me)
		authenticated.PUT("/me", hs.restHandler.UpdateMe)

		authenticated.GET("/users/search", hs.restHandler.SearchUsers)
		authenticated.GET("/users/:login", hs.restHandler.GetUserInfo)
		authenticated.PUT("/users/:login/note", hs.restHandler.SetUserNote)
		authenticated.GET("/users/:login/presence", hs.restHandler.GetPresence)

		authenticated.GET("/messages", hs.restHandler.GetMessages)
		authenticated.POST("/messages", hs.restHandler.SendMessage)
		authenticated.PUT("/messages/:id", hs.restHandler.EditMessage)
		authenticated.DELETE("/messages/:id", hs.restHandler.DeleteMessage)
		authenticated.POST("/messages/:id/forward", hs.restHandler.ForwardMessage)
		authenticated.POST("/upload", hs.restHandler.UploadFile)

		authenticated.GET("/chats/active", hs.restHandler.GetActiveChats)

		authenticated.POST("/groups", hs.restHandler.CreateGroup)
		authenticated.PUT("/groups/:id", hs.restHandler.UpdateGroup)
		authenticated.POST("/groups/:id/owner", hs.restHandler.TransferGroupOwner)
		authenticated.DELETE("/groups/:id", hs.restHandler.DeleteGroup)

		authenticated.POST("/calls/invite", hs.restHandler.InviteCall)
	}
}

func (hs *HttpServer) setupWebSocketRoutes(api *gin.RouterGroup) {
	api.GET("/ws/events", hs.socketHandler.HandleEventsRoute)
	api.GET("/ws/calls/:roomId", hs.socketHandler.HandleCallRoute)
}

func (hs *HttpServer) startServer() *http.Server {
	addr := fmt.Sprintf(":%v", hs.config.Viper.GetInt("server.port"))
	server := &http.Server{
		Addr:    addr,
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on %v", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Hijacked websocket connections are not tracked by Shutdown; they end
	// when the process exits.
	ctx, cancel := context.WithTimeout(hs.ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}
	_, allowAll := allowed["*"]

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")
		if _, ok := allowed[origin]; origin != "" && (ok || allowAll) {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			ctx.Header("Vary", "Origin")
		}
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
