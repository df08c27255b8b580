package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/A1ekseiPanov/task-management-system/internal/auth"
	"github.com/A1ekseiPanov/task-management-system/internal/config"
	v1 "github.com/A1ekseiPanov/task-management-system/internal/delivery/http/v1"
	"github.com/A1ekseiPanov/task-management-system/internal/repository/postgres"
	"github.com/A1ekseiPanov/task-management-system/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     httpCfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server within the configured timeout.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	userRepository := postgres.NewUserRepository(globalPostgresPool)
	statusRepository := postgres.NewStatusRepository(globalPostgresPool)
	taskRepository := postgres.NewTaskRepository(globalPostgresPool)
	commentRepository := postgres.NewCommentRepository(globalPostgresPool)

	tokenCodec := auth.NewTokenCodec(jwtCfg.Issuer, []byte(jwtCfg.SigningKey), jwtCfg.TokenTTL)
	passwordHasher := auth.NewPasswordHasher()

	userService := services.NewUserService(globalLogger, userRepository, passwordHasher, tokenCodec)
	statusService := services.NewStatusService(globalLogger, statusRepository)
	taskService := services.NewTaskService(globalLogger, taskRepository, userRepository, statusRepository)
	commentService := services.NewCommentService(globalLogger, commentRepository, taskRepository)

	v1Handler := v1.New(
		globalLogger,
		tokenCodec,
		userService,
		statusService,
		taskService,
		commentService,
	)

	authRouter := router.Group("/auth")
	authRouter.POST("/registration", v1Handler.HandleRegister)
	authRouter.POST("/login", v1Handler.HandleLogin)

	statusRouter := router.Group("/statuses", v1Handler.HandleAuthMiddleware)
	statusRouter.GET("", v1Handler.HandleListStatuses)
	statusRouter.POST("", v1Handler.HandleCreateStatus)
	statusRouter.PUT("/:status_id", v1Handler.HandleUpdateStatus)
	statusRouter.DELETE("/:status_id", v1Handler.HandleDeleteStatus)

	taskRouter := router.Group("/tasks", v1Handler.HandleAuthMiddleware)
	taskRouter.GET("", v1Handler.HandleListTasks)
	taskRouter.POST("", v1Handler.HandleCreateTask)
	taskRouter.PUT("/:task_id", v1Handler.HandleUpdateTask)
	taskRouter.DELETE("/:task_id", v1Handler.HandleDeleteTask)
	taskRouter.PUT("/:task_id/statuses/:status_id", v1Handler.HandleUpdateTaskStatus)

	taskRouter.GET("/:task_id/performers", v1Handler.HandleListPerformers)
	taskRouter.POST("/:task_id/performers/:performer_id", v1Handler.HandleAddPerformer)
	taskRouter.DELETE("/:task_id/performers/:performer_id", v1Handler.HandleRemovePerformer)

	taskRouter.GET("/:task_id/comments", v1Handler.HandleListComments)
	taskRouter.POST("/:task_id/comments", v1Handler.HandleAddComment)
	taskRouter.PUT("/:task_id/comments/:comment_id", v1Handler.HandleUpdateComment)
	taskRouter.DELETE("/:task_id/comments/:comment_id", v1Handler.HandleDeleteComment)
}
