// Package storage handles media uploads to S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"glimpse/internal/config"
	"glimpse/internal/observability"
)

// Uploader stores media objects and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

type s3Uploader struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

// NewS3Uploader creates an Uploader backed by the configured S3 bucket.
func NewS3Uploader(ctx context.Context, cfg *config.Config) (Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS config: %w", err)
	}
	return &s3Uploader{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        cfg.S3Bucket,
		region:        cfg.S3Region,
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
	}, nil
}

func (u *s3Uploader) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := ObjectKey(folder, filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put object %s: %w", key, err)
	}

	observability.MediaUploadsTotal.WithLabelValues(folder).Inc()
	return PublicURL(u.publicBaseURL, u.bucket, u.region, key), nil
}

// ObjectKey builds a collision-free object key. The original filename only
// contributes its extension; the name itself is a fresh UUID.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return folder + "/" + uuid.New().String() + ext
}

// PublicURL resolves the public URL for a stored object. When no CDN base URL
// is configured it falls back to the virtual-hosted S3 endpoint.
func PublicURL(baseURL, bucket, region, key string) string {
	if baseURL != "" {
		return baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
