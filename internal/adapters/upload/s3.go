package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/greenfund/core/internal/infrastructure/config"
	"github.com/greenfund/core/internal/infrastructure/logger"
)

// ObjectAPI is the part of the S3 client the uploader uses
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage keeps uploads as objects in a bucket
type S3Storage struct {
	client ObjectAPI
	bucket string
	prefix string
	logger *logger.Logger
}

// NewS3 loads AWS configuration from the environment and builds an S3 uploader
func NewS3(ctx context.Context, cfg config.UploadConfig, log *logger.Logger) (*S3Storage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3WithClient(client, cfg.S3Bucket, cfg.S3Prefix, log), nil
}

// NewS3WithClient wraps an existing client
func NewS3WithClient(client ObjectAPI, bucket, prefix string, log *logger.Logger) *S3Storage {
	if log == nil {
		log = logger.Nop()
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &S3Storage{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: log.WithComponent("upload"),
	}
}

func (s *S3Storage) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name, err := NewName(fh.Filename)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.prefix + name),
		Body:          src,
		ContentLength: aws.Int64(fh.Size),
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to put upload object: %w", err)
	}

	s.logger.Debugw("Stored upload", "name", name, "bucket", s.bucket, "bytes", fh.Size)
	return name, nil
}

func (s *S3Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + name),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get upload object: %w", err)
	}

	return out.Body, nil
}

func (s *S3Storage) Remove(ctx context.Context, name string) error {
	if !validName(name) {
		return ErrInvalidName
	}

	// S3 deletes are idempotent, a missing key succeeds
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete upload object: %w", err)
	}

	s.logger.Debugw("Removed upload", "name", name, "bucket", s.bucket)
	return nil
}
