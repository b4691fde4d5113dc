// Package blob uploads files to an S3-compatible bucket through presigned
// PUT URLs and builds their public URLs.
package blob

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parroquia/contentadmin/internal/netx"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	uploadToPresignedURL = netx.UploadToPresignedURL
)

const presignExpires = 15 * time.Minute

// Settings locate the bucket service. PublicBaseURL, when set, replaces
// BaseEndpoint in public object URLs.
type Settings struct {
	Region        string
	AccessKey     string
	SecretKey     string
	BaseEndpoint  string
	PublicBaseURL string
}

// S3Storage implements recordsync.BlobStore.
type S3Storage struct {
	settings Settings
}

func NewS3Storage(s Settings) *S3Storage {
	return &S3Storage{settings: s}
}

func (s *S3Storage) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.settings.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.settings.AccessKey,
			s.settings.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.settings.BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// Upload stores data at path inside bucket.
func (s *S3Storage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return err
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := presignPutObject(presignClient, ctx, in, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return fmt.Errorf("presign put %s/%s: %w", bucket, path, err)
	}

	if err := uploadToPresignedURL(ctx, req.URL, data, contentType); err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, path, err)
	}
	return nil
}

// PublicURL returns the path-style URL of an object.
func (s *S3Storage) PublicURL(bucket, path string) string {
	base := s.settings.PublicBaseURL
	if base == "" {
		base = s.settings.BaseEndpoint
	}
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.TrimLeft(path, "/")
}
