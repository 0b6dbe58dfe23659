package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pvilks/wayfarer/internal/common"
)

// S3Config holds the object storage connection settings. The endpoint is a
// MinIO-style base URL; path-style addressing keeps bucket names out of DNS.
type S3Config struct {
	BaseEndpoint string
	Region       string
	AccessKey    string
	SecretKey    string
}

// S3Uploader implements Uploader on an S3-compatible endpoint.
type S3Uploader struct {
	client   *s3.Client
	endpoint string
}

func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")))
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Uploader{
		client:   client,
		endpoint: strings.TrimRight(cfg.BaseEndpoint, "/"),
	}, nil
}

// UploadFile stores data under bucket/key and returns the public URL to put
// into the row's image column.
func (u *S3Uploader) UploadFile(ctx context.Context, bucket, key string, data []byte) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		input.ContentType = aws.String(ct)
	}
	_, err := u.client.PutObject(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUploadFailed, err)
	}
	return fmt.Sprintf("%s/%s/%s", u.endpoint, bucket, key), nil
}
