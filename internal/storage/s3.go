package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store stores attachment blobs in an S3-compatible bucket.
type S3Store struct {
	client     *s3.Client
	bucketName string
}

// NewS3Store creates an S3-backed blob store against an R2-style endpoint.
func NewS3Store(accountID, bucketName, accessKeyID, secretAccessKey string) (*S3Store, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

	client := s3.New(s3.Options{
		Region:       "auto",
		BaseEndpoint: &endpoint,
		Credentials:  credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
	})

	return &S3Store{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// validateKey rejects storage keys containing path traversal segments.
func validateKey(key string) error {
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return fmt.Errorf("path traversal detected in storage key")
		}
	}
	return nil
}

// Put uploads the content to the bucket.
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64) (BlobRef, error) {
	if err := validateKey(key); err != nil {
		return BlobRef{}, err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucketName,
		Key:    &key,
		Body:   r,
	})
	if err != nil {
		return BlobRef{}, fmt.Errorf("s3 put object failed: %w", err)
	}
	return BlobRef{Path: key}, nil
}

// Get downloads the full content of a stored object.
func (s *S3Store) Get(ctx context.Context, ref BlobRef) ([]byte, error) {
	if err := validateKey(ref.Path); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucketName,
		Key:    &ref.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get object failed: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read object failed: %w", err)
	}
	return data, nil
}

// Delete removes an object from the bucket.
func (s *S3Store) Delete(ctx context.Context, ref BlobRef) error {
	if err := validateKey(ref.Path); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucketName,
		Key:    &ref.Path,
	})
	if err != nil {
		return fmt.Errorf("s3 delete object failed: %w", err)
	}
	return nil
}
