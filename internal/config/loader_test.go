package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/skyforge/networth/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			_, err := config.Load(ctx)

			convey.Convey("Then it should fail for the missing price source", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("NETWORTH_ADDR", ":8080")
			_ = os.Setenv("NETWORTH_PRICE_FILE", "/data/prices.json")
			_ = os.Setenv("NETWORTH_WORKER_COUNT", "16")
			_ = os.Setenv("NETWORTH_MAX_BATCH_SIZE", "250")
			_ = os.Setenv("NETWORTH_EXCLUDE_COSMETIC", "true")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PriceFile, convey.ShouldEqual, "/data/prices.json")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 250)
				convey.So(cfg.ExcludeCosmetic, convey.ShouldBeTrue)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 4096)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
worker_count: 24
redis_addr: "localhost:6379"
redis_key: "prices:lbin"
price_refresh_ms: 30000
result_cache_ttl_ms: 5000
category_file: "/data/items.json"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NETWORTH_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "localhost:6379")
				convey.So(cfg.RedisKey, convey.ShouldEqual, "prices:lbin")
				convey.So(cfg.PriceRefreshMS, convey.ShouldEqual, 30000)
				convey.So(cfg.ResultCacheTTLMS, convey.ShouldEqual, 5000)
				convey.So(cfg.CategoryFile, convey.ShouldEqual, "/data/items.json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
worker_count: 24
price_file: "/data/prices.json"
max_batch_size: 500
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NETWORTH_CONFIG", tmpFile)
			_ = os.Setenv("NETWORTH_ADDR", ":8080")
			_ = os.Setenv("NETWORTH_WORKER_COUNT", "32")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 500)
				convey.So(cfg.PriceFile, convey.ShouldEqual, "/data/prices.json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile("addr: [unclosed\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("NETWORTH_CONFIG", tmpFile)

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("NETWORTH_CONFIG", "/non/existent/networth.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("NETWORTH_PRICE_FILE", "/data/prices.json")
			_ = os.Setenv("NETWORTH_ADDR", "")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("NETWORTH_PRICE_FILE", "/data/prices.json")
			_ = os.Setenv("NETWORTH_WORKER_COUNT", "many")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive batch size", func() {
			_ = os.Setenv("NETWORTH_PRICE_FILE", "/data/prices.json")
			_ = os.Setenv("NETWORTH_MAX_BATCH_SIZE", "0")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with a zero worker count", func() {
			_ = os.Setenv("NETWORTH_PRICE_FILE", "/data/prices.json")
			_ = os.Setenv("NETWORTH_WORKER_COUNT", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then zero is kept for the pool to size itself", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 0)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"NETWORTH_CONFIG",
		"NETWORTH_LOG_LEVEL",
		"NETWORTH_ADDR",
		"NETWORTH_WORKER_COUNT",
		"NETWORTH_QUEUE_SIZE",
		"NETWORTH_MAX_BATCH_SIZE",
		"NETWORTH_PRICE_FILE",
		"NETWORTH_REDIS_ADDR",
		"NETWORTH_REDIS_KEY",
		"NETWORTH_PRICE_REFRESH_MS",
		"NETWORTH_CATEGORY_FILE",
		"NETWORTH_RESULT_CACHE_TTL_MS",
		"NETWORTH_EXCLUDE_COSMETIC",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "networth-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
