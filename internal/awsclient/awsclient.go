// Package awsclient builds the AWS service clients from the function config.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pricofy/comprehend-s3/internal/config"
)

// Clients are created once per execution environment and shared by invocations.
type Clients struct {
	S3         *s3.Client
	Comprehend *comprehend.Client
	Lambda     *lambda.Client
}

// Load reads the default AWS configuration (environment, shared files, role).
func Load(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// New builds every client. Comprehend is pinned to the configured region
// because it is not offered in every region.
func New(awsCfg aws.Config, cfg config.Config) *Clients {
	return &Clients{
		S3:         NewS3(awsCfg, cfg),
		Comprehend: NewComprehend(awsCfg, cfg),
		Lambda:     lambda.NewFromConfig(awsCfg),
	}
}

// NewS3 builds the S3 client.
func NewS3(awsCfg aws.Config, cfg config.Config) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

// NewComprehend builds the Comprehend client in cfg.ComprehendRegion.
func NewComprehend(awsCfg aws.Config, cfg config.Config) *comprehend.Client {
	return comprehend.NewFromConfig(awsCfg, func(o *comprehend.Options) {
		o.Region = cfg.ComprehendRegion
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}
