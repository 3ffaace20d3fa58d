package services

import (
	"bytes"
	"context"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yash77492562/E-commerce-sub000/models"
)

// SignedURLTTL is the expiry used for every read-side signed URL. Signed
// URLs are never the source of truth; callers re-fetch instead of caching
// past the window.
const SignedURLTTL = time.Hour

// storageCallTimeout bounds metadata-style object-store calls (delete,
// presign). A timeout surfaces as STORAGE_ERROR — no retries.
const storageCallTimeout = 5 * time.Second

type PutResult struct {
	Key string
	URL string
}

// ObjectStorage is the external object-store collaborator. Keys are built
// exclusively by BuildImageKey; Delete is idempotent (a missing key is not
// fatal).
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (PutResult, error)
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ════════════════════════════════════════════════════════════
// MinIO implementation
// ════════════════════════════════════════════════════════════

type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to MinIO and makes sure the bucket exists.
func NewMinioStorage(ctx context.Context) (*MinioStorage, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "gallery-images"
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.Println("🪣 Bucket created:", bucket)
	}

	log.Println("✅ Connected to MinIO:", endpoint)
	return &MinioStorage{client: client, bucket: bucket}, nil
}

func (s *MinioStorage) Put(ctx context.Context, key string, data []byte, contentType string) (PutResult, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return PutResult{}, models.StorageError(err)
	}

	signed, err := s.SignedURL(ctx, key, SignedURLTTL)
	if err != nil {
		return PutResult{}, err
	}
	return PutResult{Key: key, URL: signed}, nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()

	// RemoveObject succeeds for missing keys, which is what we want: blob
	// deletes must be safe to replay.
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return models.StorageError(err)
	}
	return nil
}

func (s *MinioStorage) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()

	reqParams := make(url.Values)
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, reqParams)
	if err != nil {
		return "", models.StorageError(err)
	}
	return presigned.String(), nil
}
