// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package objectstore signs short-lived download URLs for S3-compatible storage.

Profile photos are stored by key only; a URL is minted on every read so no
long-lived link is ever persisted or cached.
*/
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultURLLifetime bounds how long a presigned photo URL stays usable.
const DefaultURLLifetime = 15 * time.Minute

// Options configures a [Presigner].
type Options struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string

	// URLLifetime defaults to [DefaultURLLifetime].
	URLLifetime time.Duration
}

// Presigner mints GET URLs for objects in a single bucket.
type Presigner struct {
	client   *s3.PresignClient
	bucket   string
	lifetime time.Duration
}

// NewPresigner builds the S3 client with static credentials and path-style
// addressing, which MinIO requires.
func NewPresigner(ctx context.Context, options Options) (*Presigner, error) {
	if options.Endpoint == "" || options.Bucket == "" {
		return nil, errors.New("objectstore: endpoint and bucket are required")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(options.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			options.AccessKey,
			options.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("objectstore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(options.Endpoint)
		o.UsePathStyle = true
	})

	lifetime := options.URLLifetime
	if lifetime <= 0 {
		lifetime = DefaultURLLifetime
	}

	return &Presigner{
		client:   s3.NewPresignClient(client),
		bucket:   options.Bucket,
		lifetime: lifetime,
	}, nil
}

// PresignGet returns a URL that downloads key until the lifetime elapses.
func (presigner *Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	request, err := presigner.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(presigner.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presigner.lifetime))
	if err != nil {
		return "", fmt.Errorf("objectstore_presign_get_failed: %w", err)
	}

	return request.URL, nil
}
