// Command seed bulk-loads content items from a JSON file into a running
// Content API. The bulk endpoint is best-effort, not transactional: when one
// item fails, items before it stay committed, which this command reports.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
	"github.com/pixelsandpetals/content-service/pkg/sitecontent/client"
)

type Config struct {
	APIURL string `env:"CONTENT_API_URL" env-default:"http://localhost:8080"`
}

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "seed.json", "path to a JSON array of content items to create")
	flag.Parse()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		slog.Error("Failed to read seed file", "file", *file, "error", err)
		os.Exit(1)
	}

	var items []sitecontent.CreateContentRequest
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Error("Failed to parse seed file", "file", *file, "error", err)
		os.Exit(1)
	}
	if len(items) == 0 {
		slog.Error("Seed file contains no items", "file", *file)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	c := client.NewClient(cfg.APIURL)
	created, err := c.BulkCreateContent(ctx, items)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			slog.Error("Bulk create failed; earlier items may already be committed",
				"status", apiErr.StatusCode, "error", apiErr.Message)
		} else {
			slog.Error("Bulk create failed", "error", err)
		}
		os.Exit(1)
	}

	for _, item := range created {
		slog.Info("Created content", "content_id", item.ID, "type", item.Type, "slug", item.Slug)
	}
	slog.Info("Seed complete", "count", len(created))
}
