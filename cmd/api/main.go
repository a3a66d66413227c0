package main

import (
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tunebridge/tunebridge/internal/adapters"
	"github.com/tunebridge/tunebridge/internal/adapters/applemusic"
	"github.com/tunebridge/tunebridge/internal/adapters/httpapi"
	"github.com/tunebridge/tunebridge/internal/adapters/spotify"
	"github.com/tunebridge/tunebridge/internal/app"
	"github.com/tunebridge/tunebridge/internal/config"

	_ "github.com/tunebridge/tunebridge/docs"
)

// @title			TuneBridge API
// @version		1.0
// @description	API for converting music links between Apple Music and Spotify.
// @description	Extracts metadata from the source platform and fuzzy-matches it
// @description	against the target platform's catalog search.

// @contact.name	TuneBridge API Support
// @license.name	MIT

// @host		localhost:8080
// @BasePath	/
func main() {
	cfg := config.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           parseLevel(cfg.LogLevel),
		Prefix:          "tunebridge",
	})

	// Create catalog adapters
	httpClient := &http.Client{}
	spotifyProvider := spotify.NewProvider(cfg.SpotifyClientID, cfg.SpotifyClientSecret, httpClient, cfg.SpotifyRPS)
	appleProvider := applemusic.NewProvider(httpClient, cfg.ITunesRPS)

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		logger.Warn("spotify credentials not configured; conversions will fail until SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are set")
	}

	// Register providers
	registry := adapters.NewProviderRegistry()
	registry.Register(spotifyProvider)
	registry.Register(appleProvider)

	// Create application service
	conversionService := app.NewService(registry, logger, cfg.SearchLimit)

	// Setup HTTP server
	r := gin.Default()
	h := httpapi.NewHandler(conversionService)
	h.RegisterRoutes(r)

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := ":" + cfg.Port
	logger.Info("starting TuneBridge API", "addr", addr)
	logger.Info("registered platforms", "platforms", registry.Available())

	if err := r.Run(addr); err != nil {
		logger.Fatal("failed to start server", "err", err)
	}
}

func parseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
