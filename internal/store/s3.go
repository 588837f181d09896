package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the object-storage source for the data files.
type S3Options struct {
	// Region is the AWS region for the bucket.
	Region string
	// Endpoint is an optional custom endpoint (for MinIO, LocalStack, etc.).
	Endpoint string
	// UsePathStyle enables path-style addressing (required for MinIO).
	UsePathStyle bool
}

// S3Downloader fetches data files from a bucket/prefix location.
type S3Downloader struct {
	client *s3.Client
	bucket string
	prefix string
}

// ParseBucket splits a "bucket" or "bucket/prefix" location. A non-empty
// prefix always carries a trailing slash so object names append cleanly.
func ParseBucket(location string) (bucket, prefix string) {
	parts := strings.SplitN(location, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 && parts[1] != "" {
		prefix = strings.TrimSuffix(parts[1], "/") + "/"
	}
	return bucket, prefix
}

// NewS3Downloader builds the S3 client for the given "bucket" or
// "bucket/prefix" location.
func NewS3Downloader(ctx context.Context, location string, opts S3Options) (*S3Downloader, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		})
	}
	if opts.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	bucket, prefix := ParseBucket(location)
	return &S3Downloader{
		client: s3.NewFromConfig(awsCfg, s3Opts...),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Download fetches one object into localPath.
func (d *S3Downloader) Download(ctx context.Context, name, localPath string) error {
	resp, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.prefix + name),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s%s: %w", d.bucket, d.prefix, name, err)
	}
	defer resp.Body.Close()

	file, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return err
	}
	return nil
}
