// Package storage publishes finished stickers to blob storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Uploader stores a finished image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// S3 uploads objects to a fixed bucket under an optional key prefix.
type S3 struct {
	bucket   string
	prefix   string
	uploader *s3manager.Uploader
}

// NewS3 builds an uploader for the given bucket using the default AWS
// credential chain.
func NewS3(bucket, region, prefix string) (*S3, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("storage: aws session: %w", err)
	}
	return &S3{
		bucket:   bucket,
		prefix:   prefix,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// Upload stores body under prefix/key and returns the object URL.
func (s *S3) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	full := path.Join(s.prefix, key)
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(full),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", full, err)
	}
	return out.Location, nil
}
