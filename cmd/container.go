package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/logx"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match/matchapi"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match/matchinfra"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match/matchsrv"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match/worker"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/posting/postinginfra"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/profile/profileinfra"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const rescoreQueueName = "rescore:signals"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client

	// Services
	MatchService *matchsrv.MatchService

	// API Handlers
	MatchHandlers *matchapi.Handlers

	// Background Workers
	RescoreWorker *worker.RescoreWorker
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}
}

func (c *Container) initServices() {
	// --- Repositories ---
	matchRepo := matchinfra.NewPostgresMatchRepository(c.DB)
	profileRepo := profileinfra.NewPostgresProfileRepository(c.DB)
	postingRepo := postinginfra.NewPostgresPostingRepository(c.DB)

	// --- Queue ---
	rescoreQueue := matchinfra.NewRedisRescoreQueue(c.Redis, rescoreQueueName)

	// --- Domain Services ---
	c.MatchService = matchsrv.NewMatchService(matchRepo, profileRepo, postingRepo, rescoreQueue)

	// --- Handlers ---
	c.MatchHandlers = matchapi.NewHandlers(c.MatchService)

	// --- Background Workers ---
	workers := envInt("RESCORE_WORKERS", 2)
	c.RescoreWorker = worker.NewRescoreWorker(c.MatchService, rescoreQueue, workers)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		logx.Warnf("Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return value
}
