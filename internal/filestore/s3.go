package filestore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type s3Store struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
	logger   *zap.Logger
}

// NewS3 builds a Store that uploads blobs to the given bucket under prefix.
// Credentials and region come from the default AWS config chain.
func NewS3(ctx context.Context, bucket, prefix string, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &s3Store{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
		logger:   logger,
	}, nil
}

func (s *s3Store) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	fullKey := key
	if s.prefix != "" {
		fullKey = s.prefix + "/" + key
	}
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("upload proof", zap.String("key", fullKey), zap.Error(err))
		return "", err
	}
	s.logger.Info("uploaded proof", zap.String("key", fullKey))
	if out.Location != "" {
		return out.Location, nil
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, fullKey), nil
}
