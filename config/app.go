package config

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"real-time-messenger/config/common"
	"real-time-messenger/config/logger"
	"real-time-messenger/handler"
	"real-time-messenger/middleware"
	"real-time-messenger/realtime"
	"real-time-messenger/repository"
	"real-time-messenger/routes"
	"real-time-messenger/security"
	"real-time-messenger/usecase"
)

type AppConfig struct {
	*fiber.App
	*validator.Validate
	*logrus.Logger
	*DBConfig
	*security.JWT
	*middleware.Middleware
	Config   *common.Config
	Registry *prometheus.Registry
}

func RunServer() {
	newConfig := common.NewViper()
	log := NewLogger(newConfig)
	logDir, logLevel := newConfig.GetLogConfig()
	appLogger := logger.NewLogger(logDir, logLevel)

	app := NewFiber(newConfig, log)
	newDB, err := NewDB(newConfig, appLogger)
	if err != nil {
		log.WithError(err).Fatalf("Failed to open database: %v", err)
	}
	newValidator := NewValidator()
	newJWT := security.NewJWT(newConfig)
	newMiddleware := middleware.NewMiddleware(newConfig, newJWT, log)

	hub := App(&AppConfig{
		App:        app,
		Validate:   newValidator,
		Logger:     log,
		DBConfig:   newDB,
		JWT:        newJWT,
		Middleware: newMiddleware,
		Config:     newConfig,
		Registry:   prometheus.NewRegistry(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		hub.CloseAll()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Failed to shut down cleanly")
		}
	}()

	if err := app.Listen(":" + newConfig.GetAppPort()); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
}

// App wires store, live layer, usecases and handlers onto aC.App and returns the
// connection hub so the caller can close live connections on shutdown.
func App(aC *AppConfig) *realtime.Hub {
	db := aC.GetDB()
	appLogger := aC.DBConfig.AppLogger

	aC.App.Use(recover.New())
	aC.App.Use(cors.New(cors.Config{
		AllowOrigins: aC.Config.GetCorsOrigins(),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	newAuthRepository := repository.NewAuthRepository()
	newUserRepository := repository.NewUserRepository()
	newBlockRepository := repository.NewBlockRepository()
	newChatRepository := repository.NewChatRepository()
	newMemberRepository := repository.NewMemberRepository()
	newMessageRepository := repository.NewMessageRepository()
	newReactionRepository := repository.NewReactionRepository()
	directory := repository.NewDirectory(db, newMemberRepository, newUserRepository)

	metrics := realtime.NewMetrics(aC.Registry)
	hub := realtime.NewHub(metrics)
	rooms := realtime.NewRooms(directory)
	presence := realtime.NewPresence(realtime.NewMemoryRegistry(), rooms, hub, directory, metrics, appLogger)
	engine := realtime.NewEngine(presence, rooms, hub, metrics, appLogger)

	newAuthUsecase := usecase.NewAuthUsecase(newAuthRepository, aC.Validate, db, aC.Logger, aC.JWT)
	newUserUsecase := usecase.NewUserUsecase(newUserRepository, newBlockRepository, aC.Validate, db, appLogger)
	newChatUsecase := usecase.NewChatUsecase(newChatRepository, newMemberRepository, newMessageRepository, newUserRepository, aC.Validate, aC.Logger, db, engine)
	newMessageUsecase := usecase.NewMessageUsecase(newMessageRepository, newMemberRepository, newReactionRepository, newChatRepository, newUserRepository, aC.Validate, aC.Logger, db, engine)

	uploadDir, maxUpload := aC.Config.GetUploadConfig()
	uploader := handler.NewUploader(uploadDir, maxUpload)
	sendBuffer, wsRate, wsBurst := aC.Config.GetWebSocketConfig()

	route := routes.ConfigRoute{
		App:            aC.App,
		Middleware:     aC.Middleware,
		AuthHandler:    handler.NewAuthHandler(newAuthUsecase, newUserUsecase, presence, aC.Logger),
		UserHandler:    handler.NewUserHandler(newUserUsecase, uploader, aC.Logger),
		ChatHandler:    handler.NewChatHandler(newChatUsecase, newMessageUsecase, aC.Logger),
		MessageHandler: handler.NewMessageHandler(newMessageUsecase, aC.Logger),
		MediaHandler:   handler.NewMediaHandler(uploader, aC.Logger),
		WebSocketHandler: handler.NewWebSocketHandler(newChatUsecase, newMessageUsecase, presence, rooms, hub, engine, appLogger, handler.WebSocketConfig{
			SendBuffer: sendBuffer,
			Rate:       wsRate,
			Burst:      wsBurst,
		}),
		Metrics:   aC.Registry,
		UploadDir: uploadDir,
	}
	route.GetRoute()
	return hub
}
