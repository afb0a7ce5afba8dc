package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore keeps uploads as objects named "<dir>/<file>" in one bucket.
// The API serves them back under /uploads through Open.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects and creates the bucket when it does not exist yet.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Save(ctx context.Context, dst payload.Destination, u payload.Upload) (string, error) {
	object := objectName(dst, u, uuid.NewString())
	_, err := s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(u.Data), int64(len(u.Data)),
		minio.PutObjectOptions{ContentType: u.ContentType})
	if err != nil {
		return "", err
	}
	return publicPath(object), nil
}

func (s *MinioStore) Remove(ctx context.Context, path string) error {
	object, err := objectFromPath(path)
	if err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{})
}

// Object is an opened upload ready to be streamed to a client.
type Object struct {
	io.ReadCloser
	ContentType string
	Size        int64
}

// Open fetches the object behind a public /uploads path.
func (s *MinioStore) Open(ctx context.Context, path string) (*Object, error) {
	object, err := objectFromPath(path)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, err
	}
	return &Object{ReadCloser: obj, ContentType: info.ContentType, Size: info.Size}, nil
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
