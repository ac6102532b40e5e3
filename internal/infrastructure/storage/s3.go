package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Storage.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage uploads files to a bucket. When baseURL is empty the virtual-hosted
// bucket URL is returned.
type S3Storage struct {
	client  S3API
	bucket  string
	prefix  string
	baseURL string
}

func NewS3Storage(client S3API, bucket, prefix, baseURL string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, prefix: prefix, baseURL: baseURL}
}

// NewS3Client builds an S3 client from the default credential chain.
// A non-empty endpoint targets an S3-compatible store such as MinIO.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	var loaders []func(*awsconfig.LoadOptions) error
	if region != "" {
		loaders = append(loaders, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3Storage) Save(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := path.Join(s.prefix, folder, objectName(filename))

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return joinURL(s.publicBase(), key), nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key, ok := relativeTo(s.publicBase(), url)
	if !ok {
		return fmt.Errorf("%w: %s", ErrForeignURL, url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

// publicBase is the URL prefix objects are served from.
func (s *S3Storage) publicBase() string {
	if s.baseURL != "" && s.baseURL[0] != '/' {
		return s.baseURL
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com", s.bucket)
}
