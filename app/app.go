package app

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/grimoire/catalog-service/config"
	"github.com/grimoire/catalog-service/internal/handler"
	"github.com/grimoire/catalog-service/internal/imagestore"
	"github.com/grimoire/catalog-service/internal/repository"
	"github.com/grimoire/catalog-service/internal/server"
	"github.com/grimoire/catalog-service/internal/service"
	"github.com/grimoire/catalog-service/migrations"
	"github.com/grimoire/catalog-service/pkg/logger"
	"github.com/grimoire/catalog-service/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "catalog")

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return errors.Wrap(err, "repo")
	}
	images, err := imagestore.New(cfg.Images.Dir, log)
	if err != nil {
		return errors.Wrap(err, "imagestore")
	}

	jwtKey := []byte(cfg.Auth.JWTKey)
	svc := service.NewService(repo, images, jwtKey, log)
	h := handler.New(svc, images, jwtKey, images.Dir(), log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr",
				net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
