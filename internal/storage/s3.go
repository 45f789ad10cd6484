package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Store writes uploaded resumes to S3.
type S3Store struct {
	svc s3iface.S3API
}

func NewS3Store(p client.ConfigProvider) *S3Store {
	return &S3Store{svc: s3.New(p)}
}

// Put stores body at bucket/key. md5 is the base64 Content-MD5 of body and
// may be empty.
func (r *S3Store) Put(ctx context.Context, bucket, key, contentType, md5 string, body []byte) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}
	if md5 != "" {
		input.ContentMD5 = aws.String(md5)
	}
	if _, err := r.svc.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
