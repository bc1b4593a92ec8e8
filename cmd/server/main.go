package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Omkar-Hajare/IP-practical/internal/activity"
	"github.com/Omkar-Hajare/IP-practical/internal/auth"
	"github.com/Omkar-Hajare/IP-practical/internal/books"
	"github.com/Omkar-Hajare/IP-practical/internal/config"
	"github.com/Omkar-Hajare/IP-practical/internal/server"
	"github.com/Omkar-Hajare/IP-practical/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatalf("mongo ping: %v", err)
	}
	mongoStore := store.NewMongoStore(mongoClient.Database(cfg.Mongo.DB))
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		logger.Fatalf("mongo indexes: %v", err)
	}
	logger.WithField("db", cfg.Mongo.DB).Info("MongoDB connected")

	// ── Users: MongoDB unless PostgreSQL is configured ───────
	var users auth.UserStore = mongoStore
	if cfg.UsersInPostgres() {
		pgPool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			logger.Fatalf("postgres connect: %v", err)
		}
		defer pgPool.Close()
		pgStore := store.NewPostgresStore(pgPool)
		if err := pgStore.Migrate(ctx); err != nil {
			logger.Fatalf("postgres migrate: %v", err)
		}
		users = pgStore
		logger.Info("accounts stored in PostgreSQL")
	}

	// ── Redis (circulation log) ──────────────────────────────
	var events *activity.Log
	if cfg.RedisEnabled() {
		rdb, err := store.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			logger.Fatalf("redis connect: %v", err)
		}
		defer rdb.Close()
		events = activity.NewLog(rdb)
		logger.WithField("addr", cfg.Redis.Addr).Info("activity log enabled")
	}

	// ── MinIO (book covers) ──────────────────────────────────
	var covers books.CoverStore
	if cfg.MinioEnabled() {
		minioStore, err := store.NewMinioStore(
			ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey,
			cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.Fatalf("minio connect: %v", err)
		}
		covers = minioStore
		logger.WithField("bucket", cfg.Minio.Bucket).Info("cover storage enabled")
	}

	// ── Seed ─────────────────────────────────────────────────
	n, err := books.Seed(ctx, mongoStore)
	if err != nil {
		logger.Fatalf("seed books: %v", err)
	}
	if n > 0 {
		logger.WithField("count", n).Info("Sample data seeded")
	}

	// ── Router ───────────────────────────────────────────────
	router := server.NewRouter(server.Handlers{
		Auth:     auth.NewHandler(users, logger),
		Books:    books.NewHandler(mongoStore, events, covers, logger),
		Activity: activity.NewHandler(events),
	}, logger)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
}
