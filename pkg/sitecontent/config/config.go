// Package config builds sitecontent services from declarative configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
	ddbrepo "github.com/pixelsandpetals/content-service/pkg/sitecontent/repo/dynamodb"
	"github.com/pixelsandpetals/content-service/pkg/sitecontent/repo/memory"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:           "8080",
		Environment:    "development",
		RepositoryType: "memory",
		Region:         "us-east-1",
		EnableEventLog: true,
	}
}

// ServerConfig represents server configuration for the content service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Repository configuration
	RepositoryType string // "memory", "dynamodb"
	TableName      string // DynamoDB table name
	Region         string // AWS region
	Endpoint       string // Optional endpoint override (DynamoDB Local)

	// Static credentials (optional; default AWS chain otherwise)
	AccessKeyID     string
	SecretAccessKey string

	// Server options
	EnableEventLog bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.RepositoryType != "memory" && c.RepositoryType != "dynamodb" {
		return errors.New("repository_type must be 'memory' or 'dynamodb'")
	}

	if c.RepositoryType == "dynamodb" && c.TableName == "" {
		return errors.New("table_name is required when using dynamodb")
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService(ctx context.Context) (sitecontent.Service, error) {
	repo, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	options := []sitecontent.Option{sitecontent.WithRepository(repo)}
	if c.EnableEventLog {
		options = append(options, sitecontent.WithEventSink(sitecontent.NewLogEventSink(slog.Default())))
	}

	return sitecontent.New(options...)
}

// BuildRepository creates a Repository based on the configuration
func (c *ServerConfig) BuildRepository(ctx context.Context) (sitecontent.Repository, error) {
	switch c.RepositoryType {
	case "memory":
		return memory.New(), nil
	case "dynamodb":
		return ddbrepo.New(ctx, ddbrepo.Config{
			Region:          c.Region,
			TableName:       c.TableName,
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
			Endpoint:        c.Endpoint,
		})
	default:
		return nil, fmt.Errorf("unsupported repository type: %s", c.RepositoryType)
	}
}
