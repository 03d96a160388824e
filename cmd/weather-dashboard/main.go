package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"weather-dashboard/config"
	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/internal/imagery"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/services/advice"
	"weather-dashboard/internal/services/background"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/observe"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description City weather dashboard backend: geocoded current conditions and forecasts
// @description with Turkish localization, background image resolution and rule-based advice.
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather lookup operations
// @tag.name Background
// @tag.description Background image resolution
// @tag.name Advice
// @tag.description Rule-based weather advice
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// local development convenience, the file is optional
	_ = godotenv.Load()

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalln("configuration error:", err)
	}

	writers := []io.Writer{os.Stdout}
	if cnf.Log.SentryDSN != "" {
		writers = append(writers, observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Log.SentryDSN, cnf.IsDevelopment()))
	}
	l := observe.NewZapLoggerWithLevel(cnf.App.Name, observe.ParseLevel(cnf.Log.Level), writers...)

	app := httpserver.InitFiberServer(
		cnf.App.Name,
		time.Duration(cnf.Server.ReadTimeout)*time.Second,
		time.Duration(cnf.Server.WriteTimeout)*time.Second,
	)

	httpClient := &http.Client{Timeout: cnf.Weather.HTTPTimeout}

	geocoder := repositories.NewGeocoderRepository(cnf.Weather.GeoURL, cnf.Weather.APIKey, cnf.Weather.Lang, httpClient, l)
	openweather := repositories.NewOpenWeatherRepository(cnf.Weather.BaseURL, cnf.Weather.APIKey, cnf.Weather.Units, cnf.Weather.Lang, httpClient, l)

	weatherService := weather.NewService(geocoder, openweather, weather.Options{
		Freshness:     cnf.Cache.Freshness,
		MinInterval:   cnf.Cache.MinInterval,
		LookupTimeout: cnf.Cache.LookupTimeout,
	}, l)

	var searcher background.ImageSearcher
	if cnf.RemoteSearchEnabled() {
		searcher = repositories.NewUnsplashRepository(
			cnf.Images.UnsplashURL, cnf.Images.UnsplashKey,
			cnf.Images.PerPage, cnf.Images.Orientation,
			cnf.Weather.HTTPTimeout, l,
		)
	} else {
		l.Warning("no unsplash key configured, remote image search disabled")
	}

	swapper := background.NewMemorySwapper(imagery.DefaultImage)
	backgroundService := background.NewService(
		imagery.NewCatalog(cnf.Images.AssetsDir), searcher, swapper, httpClient,
		background.Options{PreloadTimeout: cnf.Images.PreloadTimeout}, l,
	)

	var warmRefresh *scheduler.Scheduler
	if cnf.Cache.WarmRefresh {
		warmRefresh = scheduler.New(cnf.App.DefaultCity, cnf.Cache.Freshness, weatherService, l)
		if err := warmRefresh.Start(); err != nil {
			l.Warning("cannot start warm refresh", map[string]any{"err": err.Error()})
		}
	}

	v1.NewRouter(
		app,
		weatherService,
		backgroundService,
		swapper,
		advice.NewEngine(),
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Server.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if warmRefresh != nil {
			warmRefresh.Stop()
		}
		_ = app.ShutdownWithContext(shutdownCtx)
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
