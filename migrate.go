package main

import (
	"context"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the mentor collection indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Sources: cli.EnvVars("MENTOR_CONFIG"),
				Usage:   "Path to the ini config file",
				Value:   "config.ini",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}

			client, err := connectMongo(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()

			logger.Info("Ensuring mentor indexes", zap.String("tenant", cfg.MongoDatabase))
			if err := db.InitMentorDB(ctx, client, cfg.MongoDatabase); err != nil {
				return err
			}
			logger.Info("Mentor indexes ready")
			return nil
		},
	}
}
