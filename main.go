package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/arremate/leilao-finder/pkg/common"
	"github.com/arremate/leilao-finder/pkg/server"
	"github.com/arremate/leilao-finder/pkg/source"
	"github.com/arremate/leilao-finder/pkg/tracking"
)

var (
	listenAddress = ":8080"
	rabbitUrl     = os.Getenv("RABBIT_URL")
	redisUrl      = os.Getenv("REDIS_URL")
	redisPassword = os.Getenv("REDIS_PASSWORD")
	sampleCount   = os.Getenv("SAMPLE_ITEMS")
)

func init() {
	// Missing .env is fine, the environment may carry everything already.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	if addr := os.Getenv("LISTEN_ADDRESS"); addr != "" {
		listenAddress = addr
	}
}

func main() {
	log := slog.Default()

	count := 240
	if sampleCount != "" {
		if parsed, err := strconv.Atoi(sampleCount); err == nil && parsed > 0 {
			count = parsed
		}
	}

	var src source.Source = source.NewSampleSource(count, 0)
	var hooks []common.ShutdownHook
	if redisUrl != "" {
		cached := source.NewCachedSource(src, redisUrl, redisPassword, 0, 10*time.Minute, log)
		src = cached
		hooks = append(hooks, func(ctx context.Context) error { return cached.Close() })
		log.Info("listing cache enabled", "redis", redisUrl)
	}

	var trk tracking.Tracking = tracking.NoopTracking{}
	if rabbitUrl != "" {
		rabbitTracking, err := tracking.NewRabbitTracking(rabbitUrl, log)
		if err != nil {
			log.Error("tracking broker unavailable, continuing without", "err", err)
		} else {
			trk = rabbitTracking
			hooks = append(hooks, func(ctx context.Context) error { return rabbitTracking.Close() })
			log.Info("tracking enabled", "rabbit", rabbitUrl)
		}
	}

	ws := server.NewWebServer(src, trk, log)

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   10 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(&http.Server{
		Addr:    listenAddress,
		Handler: ws.Handler(),
	}, timeouts)
	common.RunServerWithShutdown(httpServer, "leilao-finder", timeouts.Shutdown, hooks...)
}
