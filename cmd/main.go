package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/studyhive/collab-service/internal/bootstrap"
	"github.com/studyhive/collab-service/internal/config"
	"github.com/studyhive/collab-service/internal/gate"
	"github.com/studyhive/collab-service/internal/middleware"
	"github.com/studyhive/collab-service/internal/mindmap"
	"github.com/studyhive/collab-service/pkg/database"
	"github.com/studyhive/collab-service/pkg/jwt"
	"github.com/studyhive/collab-service/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := log.L()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Init(cfg.Log)
	l := log.L()

	l.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting collab service")

	// Database + mindmap store
	db, err := database.New(&cfg.Database)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db, &mindmap.Mindmap{}); err != nil {
		l.Fatal().Err(err).Msg("failed to migrate database")
	}
	mindmapSvc := mindmap.NewService(mindmap.NewGormRepository(db))

	// Auth collaborator: token validation writes session records the
	// connection gate reads.
	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create jwt manager")
	}
	sessions := gate.NewSessionStore(cfg.Gate.SessionTTL)
	auth := middleware.NewAuthMiddleware(tokens, sessions)

	// Collab server (idempotent process-wide bootstrap)
	collab, err := bootstrap.Ensure(cfg.WebSocket, bootstrap.Deps{
		Sessions:  sessions,
		Documents: mindmapSvc,
		Auth:      auth,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("failed to initialize collab server")
	}

	// HTTP routes
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(log.GinMiddleware(l))

	collab.HTTP.RegisterRoutes(router, collab.WS)
	mindmap.NewHandler(mindmapSvc, auth).RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info().Str("addr", server.Addr).Msg("collab service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info().Msg("shutting down collab service")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("collab service exited with error")
		return
	}

	l.Info().Msg("collab service stopped")
}
