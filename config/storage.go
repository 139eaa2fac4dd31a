package config

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var MinioClient *minio.Client

// IssueBucket holds every uploaded issue image. Objects are immutable once
// written and publicly readable by URL.
const IssueBucket = "issue-images"

var storageEndpoint string
var storageUseSSL bool

// InitStorage initializes the MinIO client and ensures the issue-images
// bucket exists with anonymous read access, so that stored objects can be
// referenced by plain public URLs from issue rows.
func InitStorage() {
	storageEndpoint = os.Getenv("MINIO_HOST")
	if storageEndpoint == "" {
		storageEndpoint = "localhost:9000"
	}
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	storageUseSSL = os.Getenv("MINIO_USE_SSL") == "true"

	var err error
	MinioClient, err = minio.New(storageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: storageUseSSL,
	})
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("MinIO client initialized successfully to %s\n", storageEndpoint)

	ctx := context.Background()
	exists, err := MinioClient.BucketExists(ctx, IssueBucket)
	if err != nil {
		log.Fatalln(err)
	}
	if !exists {
		err = MinioClient.MakeBucket(ctx, IssueBucket, minio.MakeBucketOptions{})
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Successfully created bucket %s\n", IssueBucket)
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, IssueBucket)
	if err := MinioClient.SetBucketPolicy(ctx, IssueBucket, policy); err != nil {
		log.Printf("Failed to set public read policy on %s: %v", IssueBucket, err)
	}
}

// UploadIssueImage uploads a file reader to the given path in the issue bucket
func UploadIssueImage(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	_, err := MinioClient.PutObject(ctx, IssueBucket, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// RemoveIssueImage deletes an uploaded object. Used only as a best-effort
// compensation when the issue row insert fails after an upload succeeded.
func RemoveIssueImage(ctx context.Context, objectName string) error {
	return MinioClient.RemoveObject(ctx, IssueBucket, objectName, minio.RemoveObjectOptions{})
}

// PublicImageURL resolves the public URL for an uploaded object. When
// PUBLIC_STORAGE_URL is set (a CDN or reverse proxy in front of the bucket)
// it takes precedence over the raw endpoint.
func PublicImageURL(objectName string) string {
	if base := os.Getenv("PUBLIC_STORAGE_URL"); base != "" {
		return fmt.Sprintf("%s/%s/%s", base, IssueBucket, objectName)
	}
	scheme := "http"
	if storageUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, storageEndpoint, IssueBucket, objectName)
}
