package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/aws/aws-sdk-go/service/textract/textractiface"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gostones/resumeupload/internal/config"
	"github.com/gostones/resumeupload/internal/document"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

type fakeTextract struct {
	textractiface.TextractAPI
	input  *textract.DetectDocumentTextInput
	blocks []*textract.Block
	err    error
}

func (f *fakeTextract) DetectDocumentTextWithContext(_ aws.Context, in *textract.DetectDocumentTextInput, _ ...request.Option) (*textract.DetectDocumentTextOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &textract.DetectDocumentTextOutput{Blocks: f.blocks}, nil
}

func TestS3StorePut(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Store{svc: fake}

	err := store.Put(context.Background(), "bucket", "uploads/cv.pdf", document.TypePDF, "XMXW8ZQjssoIM6smb2dxqg==", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "bucket", aws.StringValue(fake.input.Bucket))
	assert.Equal(t, "uploads/cv.pdf", aws.StringValue(fake.input.Key))
	assert.Equal(t, document.TypePDF, aws.StringValue(fake.input.ContentType))
	assert.Equal(t, "XMXW8ZQjssoIM6smb2dxqg==", aws.StringValue(fake.input.ContentMD5))
	assert.Equal(t, []byte("%PDF"), fake.body)

	require.NoError(t, store.Put(context.Background(), "bucket", "k", document.TypePDF, "", nil))
	assert.Nil(t, fake.input.ContentMD5)
}

func TestS3StorePutError(t *testing.T) {
	store := &S3Store{svc: &fakeS3{err: errors.New("access denied")}}

	err := store.Put(context.Background(), "bucket", "k", document.TypePDF, "", nil)
	assert.EqualError(t, err, "failed to put s3://bucket/k: access denied")
}

func TestDetectLines(t *testing.T) {
	fake := &fakeTextract{blocks: []*textract.Block{
		{BlockType: aws.String(textract.BlockTypePage)},
		{BlockType: aws.String(textract.BlockTypeLine), Text: aws.String("Jane Doe")},
		{BlockType: aws.String(textract.BlockTypeWord), Text: aws.String("Jane")},
		{BlockType: aws.String(textract.BlockTypeLine), Text: aws.String("Go, AWS")},
	}}
	d := &TextractDetector{svc: fake}

	got, err := d.DetectLines(context.Background(), "bucket", "uploads/cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe", "Go, AWS"}, got)
	assert.Equal(t, "bucket", aws.StringValue(fake.input.Document.S3Object.Bucket))
	assert.Equal(t, "uploads/cv.pdf", aws.StringValue(fake.input.Document.S3Object.Name))

	d = &TextractDetector{svc: &fakeTextract{err: errors.New("unsupported document")}}
	_, err = d.DetectLines(context.Background(), "bucket", "k")
	assert.Error(t, err)
}

func TestNewSession(t *testing.T) {
	sess, err := NewSession(config.AWSConfig{
		Region:           "us-east-1",
		Endpoint:         "http://localhost:9000",
		AccessKeyID:      "key",
		SecretAccessKey:  "secret",
		S3ForcePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", aws.StringValue(sess.Config.Region))
	assert.Equal(t, "http://localhost:9000", aws.StringValue(sess.Config.Endpoint))
	assert.True(t, aws.BoolValue(sess.Config.S3ForcePathStyle))

	creds, err := sess.Config.Credentials.Get()
	require.NoError(t, err)
	assert.Equal(t, "key", creds.AccessKeyID)
}

// TestS3StoreIntegration puts a small PDF into a real S3 compatible store.
func TestS3StoreIntegration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")

	if endpoint == "" || accessKey == "" || secretKey == "" {
		t.Skip("MinIO configuration not set (MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY), skipping integration test")
	}
	if bucket == "" {
		bucket = "resume-auto-uploads-test"
	}

	sess, err := NewSession(config.AWSConfig{
		Region:           "us-east-1",
		Endpoint:         endpoint,
		AccessKeyID:      accessKey,
		SecretAccessKey:  secretKey,
		S3ForcePathStyle: true,
	})
	require.NoError(t, err)

	body := []byte("%PDF-1.4\n%Mock PDF content for testing\n%%EOF")
	f := document.FromBytes("cv.pdf", "", body)
	md5, _, err := f.MD5()
	require.NoError(t, err)

	key := "uploads/test-" + uuid.NewString() + ".pdf"
	require.NoError(t, NewS3Store(sess).Put(context.Background(), bucket, key, document.TypePDF, md5, body))
	t.Logf("uploaded s3://%s/%s", bucket, key)
}
