package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/mentor-boot/mentor"
	"github.com/SaiNageswarS/mentor-boot/services"
	"github.com/SaiNageswarS/mentor-boot/store"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the mentor HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Sources: cli.EnvVars("MENTOR_CONFIG"),
				Usage:   "Path to the ini config file",
				Value:   "config.ini",
			},
			&cli.StringFlag{
				Name:    "port",
				Sources: cli.EnvVars("MENTOR_PORT"),
				Usage:   "Listen address, overrides http_port",
			},
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "Use an empty in-process record store instead of MongoDB",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			if port := cmd.String("port"); port != "" {
				cfg.HTTPPort = port
			}

			var records store.RecordStore
			if cmd.Bool("in-memory") {
				logger.Info("Using in-memory record store")
				records = store.NewInMemoryStore()
			} else {
				client, err := connectMongo(ctx, cfg)
				if err != nil {
					return err
				}
				defer func() { _ = client.Disconnect(context.Background()) }()
				records = store.NewMongoStore(client, cfg.MongoDatabase)
			}

			completer, err := newCompleter(cfg)
			if err != nil {
				return err
			}

			m, err := mentor.NewMentorBuilder().
				WithCompleter(completer).
				WithStore(store.Instrument(records)).
				WithTemperature(cfg.Temperature).
				WithMaxTokens(cfg.MaxTokens).
				WithHistoryTurns(cfg.HistoryTurns).
				WithQueueSize(cfg.MemoryQueueSize).
				Build()
			if err != nil {
				return err
			}
			defer m.Close()

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              cfg.HTTPPort,
				Handler:           services.NewRouter(m),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Mentor API listening",
					zap.String("addr", cfg.HTTPPort),
					zap.String("provider", completer.Provider()),
					zap.String("model", completer.GetModel()))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("Shutting down mentor API")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
