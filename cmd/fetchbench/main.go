// Command fetchbench fetches a fixed range of user records from a remote
// JSON API twice, once sequentially and once through a bounded worker
// pool, and reports the elapsed wall-clock time for each strategy.
//
// Configuration is taken from the environment (a .env file is honored),
// with working defaults for every variable:
//
//	USERS_BASE_URL  API base URL (default https://jsonplaceholder.typicode.com)
//	USER_COUNT      number of records to fetch (default 10)
//	POOL_WORKERS    worker pool size (default 10)
//	LOG_LEVEL       debug|info|warn|error (default info)
//	REDIS_URL       enables the response cache when set; note that with
//	                caching on, the pooled pass is served from cache and
//	                no longer measures network fan-out
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rarchitgupta/userfetch/pkg/client"
	"github.com/rarchitgupta/userfetch/pkg/fetch"
	"github.com/rarchitgupta/userfetch/pkg/logging"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: true,
		Output: os.Stderr,
	})

	count := getEnvInt("USER_COUNT", 10)
	workers := getEnvInt("POOL_WORKERS", 10)

	cfg := client.DefaultConfig()
	cfg.BaseURL = getEnv("USERS_BASE_URL", cfg.BaseURL)

	ctx := context.Background()

	if addr := os.Getenv("REDIS_URL"); addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("addr", addr).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		cfg.Redis = redisClient
		logger.Info().Str("addr", addr).Msg("Response cache enabled")
	}

	usersClient, err := client.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create users client")
	}
	defer usersClient.Close()

	runLogger := logger.With().Str("run_id", uuid.NewString()).Logger()

	runLogger.Info().
		Str("base_url", cfg.BaseURL).
		Int("count", count).
		Msg("Starting sequential fetch")

	seq, err := fetch.Sequential(ctx, usersClient, count)
	if err != nil {
		runLogger.Fatal().Err(err).Msg("Sequential fetch failed")
	}
	fmt.Printf("Sequential fetch: %d/%d users in %.2fs\n", seq.Fetched, count, seq.Elapsed.Seconds())

	poolCfg := fetch.DefaultConfig()
	poolCfg.Workers = workers
	pool := fetch.NewPool(usersClient, poolCfg)

	runLogger.Info().
		Int("count", count).
		Int("workers", workers).
		Msg("Starting pooled fetch")

	pooled, err := pool.Collect(ctx, count)
	if err != nil {
		runLogger.Fatal().Err(err).Msg("Pooled fetch failed")
	}
	fmt.Printf("Pooled fetch:     %d/%d users in %.2fs\n", pooled.Fetched, count, pooled.Elapsed.Seconds())
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a
// default value when unset or unparsable.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
