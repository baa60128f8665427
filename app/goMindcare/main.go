package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mindcareapp/goMindcare/app/goMindcare/handlers"
	"github.com/mindcareapp/goMindcare/business/events"
	"github.com/mindcareapp/goMindcare/business/mood"
	"github.com/mindcareapp/goMindcare/business/session"
	"github.com/mindcareapp/goMindcare/business/tracker"
	"github.com/mindcareapp/goMindcare/business/voice"
	"github.com/mindcareapp/goMindcare/foundation/config"
	"github.com/mindcareapp/goMindcare/foundation/dsp"
	"github.com/mindcareapp/goMindcare/foundation/external/sentiment"
	"github.com/mindcareapp/goMindcare/foundation/logger"
	"github.com/mindcareapp/goMindcare/foundation/pubsub"
	"github.com/mindcareapp/goMindcare/foundation/redis"
	"github.com/mindcareapp/goMindcare/foundation/store"
)

var build = "develop"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	// =================================================================================================================
	// Configuration

	godotenv.Load()

	cfg := struct {
		conf.Version
		Web struct {
			Host            string        `conf:"default:0.0.0.0:8080"`
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
		}
		Data struct {
			Directory string `conf:"default:data"`
		}
		Lexicon struct {
			Path string
		}
		Redis struct {
			Enabled      bool   `conf:"default:false"`
			Address      string `conf:"default:localhost:6379"`
			Password     string `conf:"noprint"`
			EventChannel string `conf:"default:mindcare:events"`
		}
		Logger struct {
			Directory string
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "mood tracking dashboard API",
		},
	}

	help, err := conf.Parse("MINDCARE", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =================================================================================================================
	// Application Logger

	log, err := logger.New(cfg.Logger.Directory, "goMindcare")
	if err != nil {
		return fmt.Errorf("constructing logger: %w", err)
	}
	defer log.Sync()

	log.Infow("startup", "build", build)

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =================================================================================================================
	// Core services

	st, err := store.New(cfg.Data.Directory)
	if err != nil {
		return fmt.Errorf("constructing store: %w", err)
	}

	var lexicon map[string][]string
	if cfg.Lexicon.Path != "" {
		lexicon, err = config.GetLexicon(cfg.Lexicon.Path)
		if err != nil {
			return fmt.Errorf("loading lexicon: %w", err)
		}
	}

	textAnalyzer := mood.NewAnalyzer(sentiment.NewVader(), lexicon)
	voiceClassifier := voice.NewClassifier(dsp.NewAnalyzer())
	broker := pubsub.NewBroker()

	var redisClient *redis.Redis
	if cfg.Redis.Enabled {
		redisClient, err = redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.EventChannel, log)
		if err != nil {
			return fmt.Errorf("constructing redis: %w", err)
		}
	}

	trk := tracker.New(tracker.Settings{
		Logger: log,
		Store:  st,
		Text:   textAnalyzer,
		Voice:  voiceClassifier,
		Broker: broker,
	})

	hub := events.Run(events.Settings{
		Logger: log,
		Broker: broker,
		Redis:  redisClient,
	})
	defer hub.Shutdown()

	// =================================================================================================================
	// API

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), handlers.RequestLogger(log))

	h := handlers.New(trk, session.NewManager(), hub, log)
	handlers.RegisterRoutes(engine, h)

	server := http.Server{
		Addr:         cfg.Web.Host,
		Handler:      engine,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	// =================================================================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
