// Command create-table provisions the content table and its secondary
// indexes. Provisioning is idempotent: an already-existing table is success,
// so the command is safe to run on every deployment.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	ddbrepo "github.com/pixelsandpetals/content-service/pkg/sitecontent/repo/dynamodb"
)

type Config struct {
	TableName       string `env:"CONTENT_TABLE" env-default:"pixels-petals-content"`
	Region          string `env:"AWS_REGION" env-default:"us-east-1"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
}

func main() {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo, err := ddbrepo.New(ctx, ddbrepo.Config{
		Region:          cfg.Region,
		TableName:       cfg.TableName,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Endpoint:        cfg.Endpoint,
	})
	if err != nil {
		slog.Error("Failed to create DynamoDB client", "error", err)
		os.Exit(1)
	}

	if err := repo.EnsureTable(ctx); err != nil {
		slog.Error("Failed to ensure table", "table", cfg.TableName, "error", err)
		os.Exit(1)
	}

	slog.Info("Content table ready", "table", cfg.TableName, "region", cfg.Region)
}
