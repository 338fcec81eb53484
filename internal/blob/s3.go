package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"ledgerchat/internal/domain"
)

// S3 stores attachments in any S3-compatible bucket (R2, MinIO, S3 proper).
// Objects are keyed "<content-id>/<name>" so the ledger reference resolves
// directly to an object key.
type S3 struct {
	client *s3.Client
	bucket string
}

// S3Config carries static credentials and the bucket endpoint.
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Bucket    string
	Region    string
}

// NewS3 builds an S3-compatible blob store from static credentials and a
// custom endpoint.
func NewS3(cfg S3Config) *S3 {
	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		Region:      cfg.Region,
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: cfg.Bucket}
}

// Put uploads the bytes and returns their content identifier.
func (b *S3) Put(ctx context.Context, name string, data []byte) (domain.ContentID, error) {
	id := ContentID(data)
	key := fmt.Sprintf("%s/%s", id, name)
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("upload blob %s: %w", key, err)
	}
	return id, nil
}

// Compile-time assertion that S3 implements domain.BlobStore.
var _ domain.BlobStore = (*S3)(nil)
