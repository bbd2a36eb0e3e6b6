// Package s3 stores uploaded documents in an S3 compatible bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Apurer/pet-adoption-api/internal/domains/documents/ports"
)

var _ ports.ObjectStore = (*Store)(nil)

// API is the subset of the S3 client used by Store.
type API interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Config locates the bucket and how its objects are addressed publicly.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	PublicBaseURL   string
	ForcePathStyle  bool
	AccessKeyID     string
	SecretAccessKey string
}

// Store puts objects into a bucket.
type Store struct {
	api API
	cfg Config
}

// New wraps an existing S3 API client.
func New(api API, cfg Config) (*Store, error) {
	if api == nil {
		return nil, errors.New("s3 client is nil")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}
	return &Store{api: api, cfg: cfg}, nil
}

// NewFromConfig loads AWS configuration from the environment, applying the overrides in cfg.
func NewFromConfig(ctx context.Context, cfg Config) (*Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}
	cfg.Region = awsCfg.Region
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return New(client, cfg)
}

// Put uploads the object and returns its public URL.
func (s *Store) Put(ctx context.Context, object ports.Object) (string, error) {
	input := &awss3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(object.Key),
		Body:   object.Body,
	}
	if object.Size > 0 {
		input.ContentLength = aws.Int64(object.Size)
	}
	if object.ContentType != "" {
		input.ContentType = aws.String(object.ContentType)
	}
	if _, err := s.api.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.cfg.Bucket, object.Key, err)
	}
	return s.objectURL(object.Key), nil
}

func (s *Store) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if base := strings.TrimRight(s.cfg.PublicBaseURL, "/"); base != "" {
		return base + "/" + escaped
	}
	if endpoint := strings.TrimRight(s.cfg.Endpoint, "/"); endpoint != "" {
		return endpoint + "/" + s.cfg.Bucket + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, escaped)
}
