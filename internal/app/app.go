// Package app wires configuration, logging, the response cache and the
// database into one runtime shared by every subcommand.
package app

import (
	"context"
	"os"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/packsmith/minecraft-pack-manager/internal/apicache"
	"github.com/packsmith/minecraft-pack-manager/internal/config"
	"github.com/packsmith/minecraft-pack-manager/internal/curseforge"
	"github.com/packsmith/minecraft-pack-manager/internal/database"
	"github.com/packsmith/minecraft-pack-manager/internal/downloader"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/lifecycle"
	"github.com/packsmith/minecraft-pack-manager/internal/logger"
	"github.com/packsmith/minecraft-pack-manager/internal/minecraft"
	"github.com/packsmith/minecraft-pack-manager/internal/modrinth"
	"github.com/packsmith/minecraft-pack-manager/internal/provider"
	"github.com/packsmith/minecraft-pack-manager/internal/schema"
)

type Runtime struct {
	Config     config.Config
	Log        *zap.Logger
	Fs         afero.Fs
	DB         *database.Database
	Downloader *downloader.Downloader
	Minecraft  httpclient.Doer
}

type SetupOptions struct {
	Dir      string
	Quiet    bool
	Debug    bool
	UseCache bool
}

// Setup builds the production runtime rooted at a working directory.
func Setup(options SetupOptions) (*Runtime, error) {
	cfg, err := config.Load(options.Dir)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{Debug: options.Debug, Quiet: options.Quiet})
	if err != nil {
		return nil, err
	}

	lifecycle.Register(func(os.Signal) {
		_ = log.Sync()
	})

	return New(afero.NewOsFs(), cfg, log, options.UseCache), nil
}

// New assembles a runtime over an explicit filesystem, which is what the
// command tests use.
func New(fs afero.Fs, cfg config.Config, log *zap.Logger, useCache bool) *Runtime {
	if log == nil {
		log = logger.Nop()
	}

	modrinth.SetBaseUrl(cfg.ModrinthBaseURL)
	curseforge.SetBaseURL(cfg.CurseforgeBaseURL)

	// Both public APIs tolerate a handful of requests per second from a
	// single client; bursts cover the project+versions pair per record.
	limiter := rate.NewLimiter(rate.Every(250*time.Millisecond), 4)

	minecraftClient := httpclient.NewRLClient(limiter)
	if cfg.DefaultGameVersion == "" {
		latest, err := minecraft.GetLatestVersion(context.Background(), minecraftClient)
		if err != nil {
			log.Warn("could not resolve the latest minecraft release, records without a game version stay empty", zap.Error(err))
		} else {
			cfg.DefaultGameVersion = latest
		}
	}

	providerOptions := provider.Options{
		Clients:  provider.DefaultClients(limiter),
		Cache:    apicache.New(fs, cfg.CacheDir),
		UseCache: useCache || cfg.UseCachedResponses,
		Log:      log,
	}

	db := database.New(fs, cfg.DatabasePath, database.Options{
		Log:          log,
		Defaults:     schema.Defaults{GameVersion: cfg.DefaultGameVersion},
		Provider:     providerOptions,
		ArtifactsDir: cfg.ArtifactsDir,
	})

	return &Runtime{
		Config:     cfg,
		Log:        log,
		Fs:         fs,
		DB:         db,
		Downloader: downloader.New(fs, log),
		Minecraft:  minecraftClient,
	}
}
