package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"talentd/internal/config"
)

// Client wraps the MinIO SDK with the small surface the app needs: uploads,
// presigned downloads and idempotent deletes against a single bucket.
type Client struct {
	client *minio.Client
	bucket string
}

// ObjectMeta describes one stored object.
type ObjectMeta struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// NewClient connects to MinIO and makes sure the configured bucket exists.
func NewClient(cfg config.MinIOConfig) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &Client{client: client, bucket: cfg.Bucket}, nil
}

// UploadFile stores an object in the bucket.
func (c *Client) UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error) {
	info, err := c.client.PutObject(ctx, c.bucket, objectKey, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("put object %q: %w", objectKey, err)
	}
	return &info, nil
}

// GetObject opens an object for reading.
func (c *Client) GetObject(ctx context.Context, objectKey string) (*minio.Object, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", objectKey, err)
	}
	return obj, nil
}

// GeneratePresignedURL builds a time-limited download link for an object.
func (c *Client) GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error) {
	presignedURL, err := c.client.PresignedGetObject(ctx, c.bucket, objectKey, duration, nil)
	if err != nil {
		return "", fmt.Errorf("generate presigned url for %q: %w", objectKey, err)
	}
	return presignedURL.String(), nil
}

// ListObjects returns up to limit objects under a prefix.
func (c *Client) ListObjects(ctx context.Context, prefix string, limit int) ([]ObjectMeta, error) {
	if limit <= 0 {
		limit = 50
	}
	objCh := c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	result := make([]ObjectMeta, 0, limit)
	for object := range objCh {
		if object.Err != nil {
			return nil, fmt.Errorf("list objects under %q: %w", prefix, object.Err)
		}
		result = append(result, ObjectMeta{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// DeleteObject removes an object. A missing object counts as success.
func (c *Client) DeleteObject(ctx context.Context, objectKey string) error {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return nil
	}
	if err := c.client.RemoveObject(ctx, c.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		if IsNoSuchKey(err) {
			return nil
		}
		return fmt.Errorf("remove object %q: %w", objectKey, err)
	}
	return nil
}

// DeletePrefix removes every object under a prefix. Already-missing objects
// are skipped; remaining failures are aggregated.
func (c *Client) DeletePrefix(ctx context.Context, prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}

	objects, err := c.ListObjects(ctx, prefix, 1000)
	if err != nil {
		return err
	}

	var failed int
	for _, object := range objects {
		if err := c.DeleteObject(ctx, object.Key); err != nil {
			failed++
			slog.Error("delete object under prefix failed",
				slog.String("prefix", prefix),
				slog.String("key", object.Key),
				slog.Any("error", err),
			)
		}
	}
	if failed > 0 {
		return fmt.Errorf("delete objects under %q: %d errors", prefix, failed)
	}
	return nil
}
