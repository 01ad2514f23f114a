package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pod-portal/internal/config"
	"pod-portal/internal/handler"
	"pod-portal/internal/logger"
	"pod-portal/internal/middleware"
	"pod-portal/internal/model"
	"pod-portal/internal/service"
	"pod-portal/internal/storage"
	"pod-portal/internal/web"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	middleware.JWTSecret = []byte(cfg.Auth.Secret)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	// The users table is owned by the sibling application; only the
	// portal's own tables are migrated here.
	if err := db.AutoMigrate(&model.PODEvent{}, &model.ExpectedDelivery{}); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	gcs := storage.NewGCSClient(cfg.GCS.Endpoint, cfg.GCS.Bucket, cfg.GCS.Token)
	couchdrop := storage.NewCouchdropClient(cfg.Couchdrop.Endpoint, cfg.Couchdrop.Token)

	authSvc := service.NewAuthService(db)
	podSvc := service.NewPODService(db, gcs)
	feedSvc := service.NewFeedService(db)

	authH := handler.NewAuthHandler(authSvc, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	podH := handler.NewPODHandler(podSvc)
	uploadH := handler.NewUploadHandler(couchdrop)
	dashH := handler.NewDashboardHandler(feedSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.POST("/auth/login", authH.Login)

	portal := r.Group("/", middleware.RequireEmployee(db))
	portal.GET("/pod/event", web.ServePage("pod_event.html"))
	portal.POST("/pod/event", podH.Capture)
	portal.GET("/upload", web.ServePage("upload.html"))
	portal.POST("/upload", uploadH.Batch)
	portal.GET("/history", web.ServePage("history.html"))
	portal.GET("/ops/dashboard", dashH.Page)
	portal.GET("/api/deliveries/live", dashH.LiveDeliveries)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
