package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/api"
	"github.com/neurolab-analysis-server/internal/auth"
	"github.com/neurolab-analysis-server/internal/cache"
	"github.com/neurolab-analysis-server/internal/catalog"
	"github.com/neurolab-analysis-server/internal/config"
	"github.com/neurolab-analysis-server/internal/database"
	"github.com/neurolab-analysis-server/internal/model"
	"github.com/neurolab-analysis-server/internal/repository"
	"github.com/neurolab-analysis-server/internal/service"
	"github.com/neurolab-analysis-server/internal/store"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	cfg := configManager.GetConfig()

	logger := newLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := catalog.Default()
	if err != nil {
		logger.WithField("error", err).Fatal("Reference catalog failed validation")
	}

	classifier, err := model.NewClassifier(cfg.Model.TestResultsPath, cfg.Model.ScalerPath, logger)
	if err != nil {
		logger.WithField("error", err).Fatal("Failed to load test results model")
	}

	imaging := make(map[string]*service.ImagingAnalysisService)
	for modality, path := range map[string]string{
		"xray": cfg.Model.XRayPath,
		"mri":  cfg.Model.MRIPath,
		"ct":   cfg.Model.CTPath,
	} {
		svc, err := service.NewImagingAnalysisService(modality, path, logger)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"modality": modality,
				"error":    err,
			}).Fatal("Failed to initialize imaging service")
		}
		imaging[modality] = svc
	}

	users, err := newUserStore(cfg.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Failed to open user store")
	}
	defer users.Close()

	authSvc, err := auth.NewService(users, cfg.Auth.Secret, cfg.Auth.TokenTTL, logger)
	if err != nil {
		logger.WithField("error", err).Fatal("Failed to initialize auth service")
	}

	var redisClient *redis.Client
	if cfg.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			logger.WithField("error", err).Fatal("Invalid Redis URL")
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}
	resultCache := cache.New(cache.Config{
		Enabled:     cfg.Cache.Enabled,
		TTL:         cfg.Cache.TTL,
		MaxEntries:  cfg.Cache.MaxEntries,
		RedisClient: redisClient,
	}, logger)

	var reports *repository.ReportRepository
	if cfg.Database.ReportsEnabled {
		db, err := database.NewConnection(ctx, database.Config{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			Database:    cfg.Database.Database,
			Username:    cfg.Database.Username,
			Password:    cfg.Database.Password,
			MaxConns:    int32(cfg.Database.MaxOpenConns),
			MinConns:    int32(cfg.Database.MaxIdleConns),
			MaxConnLife: cfg.Database.ConnMaxLifetime,
			MaxConnIdle: cfg.Database.ConnMaxLifetime,
			SSLMode:     cfg.Database.SSLMode,
		}, logger)
		if err != nil {
			logger.WithField("error", err).Fatal("Failed to connect to report database")
		}
		defer db.Close()

		reports = repository.NewReportRepository(db.Pool, logger)
		if err := reports.EnsureSchema(ctx); err != nil {
			logger.WithField("error", err).Fatal("Failed to prepare report schema")
		}
	}

	server := api.NewServer(cfg, api.Deps{
		Auth:     authSvc,
		Analysis: service.NewTestAnalysisService(logger, cat, classifier),
		Imaging:  imaging,
		Cache:    resultCache,
		Reports:  reports,
	}, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting NeuroLab analysis server")

	if err := server.Start(ctx); err != nil {
		logger.WithField("error", err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

func newUserStore(cfg config.DatabaseConfig) (store.Store, error) {
	if cfg.Driver == "postgres" {
		url := "host=" + cfg.Host + " dbname=" + cfg.Database +
			" user=" + cfg.Username + " password=" + cfg.Password +
			" sslmode=" + cfg.SSLMode
		return store.NewPostgresStoreFromURL(url)
	}
	return store.NewSQLiteStore(cfg.SQLitePath)
}
