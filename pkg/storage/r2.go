package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the part of the S3 client R2Storage uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Storage publishes documents to a Cloudflare R2 bucket through the S3 API.
type R2Storage struct {
	client        objectPutter
	bucketName    string
	publicURL     string
	uploadTimeout time.Duration
}

func NewR2Storage(ctx context.Context, accountId, accessKey, secretKey, bucketName, publicURL string, uploadTimeout time.Duration) (*R2Storage, error) {
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountId),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return newR2Storage(client, bucketName, publicURL, uploadTimeout), nil
}

func newR2Storage(client objectPutter, bucketName, publicURL string, uploadTimeout time.Duration) *R2Storage {
	return &R2Storage{
		client:        client,
		bucketName:    bucketName,
		publicURL:     strings.TrimSuffix(publicURL, "/"),
		uploadTimeout: uploadTimeout,
	}
}

// UploadJSON writes data under key, replacing any previous version, and
// returns the public URL of the object. The object is served with a short
// cache lifetime so storefronts pick up price changes quickly.
func (s *R2Storage) UploadJSON(ctx context.Context, key string, data []byte) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("public, max-age=300"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to R2: %w", key, err)
	}

	return s.PublicURL(key), nil
}

func (s *R2Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, strings.TrimPrefix(key, "/"))
}
