// Package storage publishes rendered images to S3-compatible object
// storage.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig
const (
	EnvBucket    = "RAYTRACER_S3_BUCKET"
	EnvRegion    = "RAYTRACER_S3_REGION"
	EnvEndpoint  = "RAYTRACER_S3_ENDPOINT"
	EnvAccessKey = "RAYTRACER_S3_ACCESS_KEY"
	EnvSecretKey = "RAYTRACER_S3_SECRET_KEY"
)

const defaultRegion = "us-east-1"

// ErrMissingBucket is returned when no bucket is configured
var ErrMissingBucket = errors.New("no S3 bucket configured")

// Config holds the S3 connection settings
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Empty uses the AWS endpoint for Region
	AccessKey string // Empty uses the default AWS credential chain
	SecretKey string
}

// LoadConfig reads the RAYTRACER_S3_* environment variables. When envFile
// is set and exists it is loaded first; variables already present in the
// environment take precedence over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("while loading %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Bucket:    os.Getenv(EnvBucket),
		Region:    os.Getenv(EnvRegion),
		Endpoint:  os.Getenv(EnvEndpoint),
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	return cfg, nil
}

// Validate checks that the config names a bucket and that credentials are
// either both set or both empty.
func (c Config) Validate() error {
	if c.Bucket == "" {
		return ErrMissingBucket
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return fmt.Errorf("S3 access key and secret key must be set together")
	}
	return nil
}
