package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/USA-RedDragon/trng-client/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage is where fetched blobs and exported results end up.
type Storage interface {
	Open(name string) (File, error)
	Create(name string) (File, error)
	Remove(name string) error
	Close() error
}

type File interface {
	io.ReadCloser
	io.Writer
}

func NewStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Output.Driver {
	case config.OutputDriverFilesystem:
		return newFiles(cfg.Output.FilesystemOptions.Directory)
	case config.OutputDriverS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Output.S3Options.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = true
			if cfg.Output.S3Options.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Output.S3Options.Endpoint)
			}
		})
		return newS3(cfg.Output.S3Options.Bucket, s3Client), nil
	default:
		return nil, fmt.Errorf("unknown output driver: %s", cfg.Output.Driver)
	}
}
