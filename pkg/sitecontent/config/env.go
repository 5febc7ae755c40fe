package config

import (
	"fmt"
	"os"
)

// WithEnv applies environment variable overrides using the provided prefix.
//
// Environment variable mapping:
//
// Server:
//   PORT        - Server port (default: "8080")
//   ENVIRONMENT - Runtime environment (default: "development")
//
// Repository:
//   CONTENT_TABLE     - DynamoDB table name. Setting it selects the DynamoDB
//                       repository; leaving it unset keeps the in-memory one.
//   CONTENT_REPOSITORY - Explicit override: "memory" or "dynamodb"
//
// AWS (DynamoDB repository only):
//   AWS_REGION            - Region (default: "us-east-1")
//   DYNAMODB_ENDPOINT     - Endpoint override for DynamoDB Local
//   AWS_ACCESS_KEY_ID     - Static credentials; the default chain is used
//   AWS_SECRET_ACCESS_KEY   when unset
func WithEnv(prefix string) Option {
	return func(c *ServerConfig) error {
		if v, ok := lookupEnv(prefix, "PORT"); ok && v != "" {
			c.Port = v
		}
		if v, ok := lookupEnv(prefix, "ENVIRONMENT"); ok && v != "" {
			c.Environment = v
		}

		if v, ok := lookupEnv(prefix, "CONTENT_TABLE"); ok && v != "" {
			c.TableName = v
			c.RepositoryType = "dynamodb"
		}
		if v, ok := lookupEnv(prefix, "CONTENT_REPOSITORY"); ok && v != "" {
			if v != "memory" && v != "dynamodb" {
				return fmt.Errorf("unsupported CONTENT_REPOSITORY: %s (use 'memory' or 'dynamodb')", v)
			}
			c.RepositoryType = v
		}

		if v, ok := os.LookupEnv("AWS_REGION"); ok && v != "" {
			c.Region = v
		}
		if v, ok := lookupEnv(prefix, "DYNAMODB_ENDPOINT"); ok && v != "" {
			c.Endpoint = v
		}
		if v, ok := os.LookupEnv("AWS_ACCESS_KEY_ID"); ok && v != "" {
			c.AccessKeyID = v
		}
		if v, ok := os.LookupEnv("AWS_SECRET_ACCESS_KEY"); ok && v != "" {
			c.SecretAccessKey = v
		}

		return nil
	}
}

func lookupEnv(prefix, key string) (string, bool) {
	return os.LookupEnv(prefix + key)
}
