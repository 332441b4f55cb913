package main

import (
	// Go Internal Packages
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Local Packages
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/gateway/ledger"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/gateway/recorder"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/controller"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/middleware"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/router"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/memory"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/postgres"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/repo_interfaces"
	"github.com/malcolmmaima/Telepesa-sub000/internal/cache"
	"github.com/malcolmmaima/Telepesa-sub000/internal/config"
	"github.com/malcolmmaima/Telepesa-sub000/internal/events"
	applogger "github.com/malcolmmaima/Telepesa-sub000/internal/logger"
	"github.com/malcolmmaima/Telepesa-sub000/internal/usecase/services"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	_ "github.com/lib/pq"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoadConfig loads the default configuration and overrides it with the
// config file specified by the path defined in the config flag
func LoadConfig() *koanf.Koanf {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()

	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

func main() {
	k := LoadConfig()
	appKonf := config.Config{}

	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		k.Print()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(k.String("logger.level")))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = appKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	zapLogger, _ := cfg.Build()
	defer func() {
		_ = zapLogger.Sync()
	}()
	applogger.Init(zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Transfer repository: postgres when a DSN is configured, in-memory
	// otherwise.
	var transferRepo repo_interfaces.TransferRepository
	if appKonf.Postgres.DSN != "" {
		db, err := sql.Open("postgres", appKonf.Postgres.DSN)
		if err != nil {
			zapLogger.Fatal("cannot open postgres connection", zap.Error(err))
		}
		defer func() {
			_ = db.Close()
		}()
		if err := db.PingContext(ctx); err != nil {
			zapLogger.Fatal("cannot reach postgres", zap.Error(err))
		}
		transferRepo = postgres.NewTransferRepository(db)
	} else {
		zapLogger.Warn("postgres dsn not configured, using in-memory transfer repository")
		transferRepo = memory.NewTransferRepository()
	}

	// Cache store for read paths.
	var cacheStore cache.Store
	if appKonf.Redis.Enabled {
		redisClient, err := cache.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
		if err != nil {
			zapLogger.Fatal("cannot create redis client", zap.Error(err))
		}
		cacheStore = cache.NewRedisStore(redisClient)
	} else {
		cacheStore = cache.NewMemoryStore()
	}

	// Transaction recorder keeps the per-account statement entries.
	var recorderClient recorder.Client
	if appKonf.Mongo.Enabled {
		mongoClient, err := recorder.Connect(ctx, appKonf.Mongo.URI)
		if err != nil {
			zapLogger.Fatal("cannot create mongo client", zap.Error(err))
		}
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
		recorderClient = recorder.NewMongoClient(mongoClient, appKonf.Mongo.Database)
	} else {
		recorderClient = recorder.NewMemoryClient()
	}

	// Lifecycle event publisher.
	var publisher events.Publisher = events.NopPublisher{}
	if appKonf.Kafka.Enabled {
		metrics := kprom.NewMetrics("transfer_events")
		kafkaPublisher, err := events.NewKafkaPublisher(&events.KafkaConfig{
			Brokers:    appKonf.Kafka.Brokers,
			Topic:      appKonf.Kafka.Topic,
			ClientName: appKonf.Kafka.ClientName,
		}, metrics)
		if err != nil {
			zapLogger.Fatal("cannot create kafka publisher", zap.Error(err))
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	ledgerClient := ledger.NewHTTPClient(appKonf.Ledger.BaseURL, appKonf.LedgerTimeout())
	feeService := services.NewFeeService()

	transferService := services.NewTransferService(
		transferRepo,
		ledgerClient,
		recorderClient,
		feeService,
		cacheStore,
		publisher,
		appKonf.CacheTTL(),
		appKonf.Transfer.DefaultCurrency,
		appKonf.Transfer.ReverseOnCreditFailure,
	)

	transferController := controller.NewTransferController(transferService)
	authMiddleware := middleware.BasicAuth(appKonf.Channel.ID, appKonf.Channel.Key, appKonf.Channel.KeyHash)
	mux := router.New(transferController, authMiddleware)

	server := &http.Server{
		Addr:         appKonf.Server.Listen,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info("http server listening", zap.String("addr", appKonf.Server.Listen))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLogger.Fatal("server terminated", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
