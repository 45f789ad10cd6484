package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/aws/aws-sdk-go/service/textract/textractiface"
)

// TextractDetector runs synchronous Textract text detection on stored objects.
type TextractDetector struct {
	svc textractiface.TextractAPI
}

func NewTextractDetector(p client.ConfigProvider) *TextractDetector {
	return &TextractDetector{svc: textract.New(p)}
}

// DetectLines returns the LINE blocks of the document at bucket/key in
// reading order.
func (r *TextractDetector) DetectLines(ctx context.Context, bucket, key string) ([]string, error) {
	out, err := r.svc.DetectDocumentTextWithContext(ctx, &textract.DetectDocumentTextInput{
		Document: &textract.Document{
			S3Object: &textract.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect text in s3://%s/%s: %w", bucket, key, err)
	}
	return lines(out.Blocks), nil
}

func lines(blocks []*textract.Block) []string {
	var out []string
	for _, b := range blocks {
		if aws.StringValue(b.BlockType) == textract.BlockTypeLine {
			out = append(out, aws.StringValue(b.Text))
		}
	}
	return out
}
