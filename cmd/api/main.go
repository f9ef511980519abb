package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/server"

	attrRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/attribute/repository"
	imgRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/image/repository"
	shopRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/shop/repository"

	brandH "github.com/fekuna/omnipos-catalog-service/internal/brand/handler"
	brandRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/brand/repository"
	brandUCPkg "github.com/fekuna/omnipos-catalog-service/internal/brand/usecase"

	catH "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"

	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	prodListenerPkg "github.com/fekuna/omnipos-catalog-service/internal/product/listener"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"

	tagH "github.com/fekuna/omnipos-catalog-service/internal/tag/handler"
	tagRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/tag/repository"
	tagUCPkg "github.com/fekuna/omnipos-catalog-service/internal/tag/usecase"
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		FileName:          cfg.Logger.FileName,
	})
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Server.RunMigrations {
		applied, err := database.Migrate(ctx, db)
		if err != nil {
			appLogger.Fatal("Could not apply migrations", zap.Error(err))
		}
		appLogger.Info("Migrations applied", zap.Strings("files", applied))
	}

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	brandRepo := brandRepoPkg.NewPGRepository(db)
	tagRepo := tagRepoPkg.NewPGRepository(db)
	prodRepos := prodUCPkg.Repositories{
		Products:   prodRepoPkg.NewPGRepository(db),
		Categories: catRepo,
		Brands:     brandRepo,
		Shops:      shopRepoPkg.NewPGRepository(db),
		Tags:       tagRepo,
		Images:     imgRepoPkg.NewPGRepository(db),
		Attributes: attrRepoPkg.NewPGRepository(db),
	}

	// 5. Initialize Kafka Publisher
	var publisher event.Publisher = event.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = event.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		appLogger.Info("Kafka publisher ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, product events are disabled")
	}
	defer publisher.Close()

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	brandUC := brandUCPkg.NewBrandUseCase(brandRepo, appLogger)
	tagUC := tagUCPkg.NewTagUseCase(tagRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepos, database.NewTransactor(db), publisher, appLogger)

	// 6.5 Start Order Listener
	if len(cfg.Kafka.Brokers) > 0 {
		orderListener := prodListenerPkg.NewOrderListener(
			event.NewKafkaReader(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic, cfg.Kafka.GroupID),
			prodUC,
			appLogger,
		)
		defer orderListener.Close()
		go orderListener.Start(ctx)
	}

	// 7. Initialize Handlers and HTTP Server
	router := server.NewRouter(server.RouterConfig{
		AppName:        cfg.Server.AppName,
		AppVersion:     cfg.Server.AppVersion,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Development:    cfg.IsDevelopment(),
	}, db, appLogger,
		catH.NewCategoryHandler(catUC, appLogger),
		brandH.NewBrandHandler(brandUC, appLogger),
		tagH.NewTagHandler(tagUC, appLogger),
		prodH.NewProductHandler(prodUC, appLogger),
	)
	httpServer := server.NewHTTPServer(listenAddr(cfg.Server.HTTPPort), router)

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve HTTP", zap.Error(err))
		}
	}()

	// 8. Start gRPC Health Server
	grpcAddr := listenAddr(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("addr", grpcAddr), zap.Error(err))
	}
	grpcServer := server.NewGRPCServer(db, appLogger)
	go grpcServer.WatchHealth(ctx, healthCheckInterval)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("addr", grpcAddr))
		if err := grpcServer.Server.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve gRPC", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
