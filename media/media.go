// Package media stores ganado pictures in object storage.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/padraicbc/concursos/config"
)

// ErrDisabled is returned by every call when no bucket is configured.
var ErrDisabled = errors.New("media: image storage is not configured")

// Storage puts and removes objects by key.
type Storage interface {
	// Put uploads body under key and returns its public URL.
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New returns an S3 storage when a bucket is configured, Disabled otherwise.
func New(cfg *config.Config) (Storage, error) {
	if cfg.S3Bucket == "" {
		return Disabled{}, nil
	}
	awsCfg := &aws.Config{Region: aws.String(cfg.S3Region)}
	if cfg.S3AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewS3(s3.New(sess), cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL), nil
}

// Disabled rejects every call with ErrDisabled.
type Disabled struct{}

func (Disabled) Put(context.Context, string, io.ReadSeeker, string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Delete(context.Context, string) error { return ErrDisabled }

// S3 keeps objects in a single bucket.
type S3 struct {
	client    s3iface.S3API
	bucket    string
	region    string
	publicURL string
}

// NewS3 wraps client. publicURL, when set, replaces the default
// virtual-hosted bucket URL (for a CDN or an S3-compatible endpoint).
func NewS3(client s3iface.S3API, bucket, region, publicURL string) *S3 {
	return &S3{
		client:    client,
		bucket:    bucket,
		region:    region,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3) Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return s.URL(key), nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// URL is the public address of key.
func (s *S3) URL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
