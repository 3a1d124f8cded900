package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Oohevt/Eco-Learn/internal/auth"
	"github.com/Oohevt/Eco-Learn/internal/config"
	apphttp "github.com/Oohevt/Eco-Learn/internal/http"
	"github.com/Oohevt/Eco-Learn/internal/kv"
	"github.com/Oohevt/Eco-Learn/internal/repository"
	"github.com/Oohevt/Eco-Learn/internal/repository/kvstore"
	"github.com/Oohevt/Eco-Learn/internal/repository/sqlite"
	"github.com/Oohevt/Eco-Learn/internal/seed"
	"github.com/Oohevt/Eco-Learn/internal/service"
)

type repositories struct {
	users     repository.UserRepository
	chapters  repository.ChapterRepository
	progress  repository.ProgressRepository
	favorites repository.FavoriteRepository
	close     func() error
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup store: %v", err)
	}
	defer repos.close()

	for name, repo := range map[string]interface {
		Init(context.Context) error
	}{
		"user":     repos.users,
		"chapter":  repos.chapters,
		"progress": repos.progress,
		"favorite": repos.favorites,
	} {
		if err := repo.Init(ctx); err != nil {
			logger.Fatalf("init %s repository: %v", name, err)
		}
	}

	hasher := auth.NewBcryptHasher()
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	userService := service.NewUserService(repos.users, hasher)
	chapterService := service.NewChapterService(repos.chapters)
	progressService := service.NewProgressService(repos.progress, repos.favorites)

	if cfg.Seed.Chapters {
		if err := seed.EnsureChapters(ctx, repos.chapters, logger); err != nil {
			logger.Fatalf("seed chapters: %v", err)
		}
	}
	if err := seed.EnsureAdmin(ctx, repos.users, hasher, cfg.Admin.Username, cfg.Admin.Password, logger); err != nil {
		logger.Fatalf("seed admin: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, chapterService, progressService, tokens, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s (backend %s)", cfg.Server.Addr, cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*repositories, error) {
	switch cfg.Store.Backend {
	case config.BackendKVRedis:
		store, err := kv.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Infof("using redis store at %s", cfg.Redis.Addr)
		return kvRepositories(store), nil

	case config.BackendKVBolt:
		store, err := kv.OpenBolt(cfg.Bolt.Path)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		logger.Infof("using bolt store at %s", cfg.Bolt.Path)
		return kvRepositories(store), nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Infof("using sqlite store at %s", cfg.Database.Path)
		return &repositories{
			users:     sqlite.NewUserRepository(db),
			chapters:  sqlite.NewChapterRepository(db),
			progress:  sqlite.NewProgressRepository(db),
			favorites: sqlite.NewFavoriteRepository(db),
			close:     db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func kvRepositories(store kv.Store) *repositories {
	return &repositories{
		users:     kvstore.NewUserRepository(store),
		chapters:  kvstore.NewChapterRepository(store),
		progress:  kvstore.NewProgressRepository(store),
		favorites: kvstore.NewFavoriteRepository(store),
		close:     store.Close,
	}
}
