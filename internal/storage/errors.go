package storage

import (
	"errors"
	"strings"

	"github.com/minio/minio-go/v7"
)

// IsNoSuchKey reports whether err means the object does not exist
// (S3/MinIO: NoSuchKey/NotFound).
func IsNoSuchKey(err error) bool {
	if err == nil {
		return false
	}

	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		switch strings.ToLower(strings.TrimSpace(minioErr.Code)) {
		case "nosuchkey", "notfound":
			return true
		}
	}

	// Gateways and proxies sometimes flatten the error into a string.
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "nosuchkey") ||
		strings.Contains(lower, "specified key does not exist") ||
		strings.Contains(lower, "not found")
}

// IsNoSuchBucket reports whether err means the bucket does not exist.
func IsNoSuchBucket(err error) bool {
	if err == nil {
		return false
	}

	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		if strings.EqualFold(strings.TrimSpace(minioErr.Code), "NoSuchBucket") {
			return true
		}
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "nosuchbucket") ||
		strings.Contains(lower, "specified bucket does not exist")
}
