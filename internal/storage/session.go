// Package storage adapts AWS S3 and Textract to the resume backend.
package storage

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/gostones/resumeupload/internal/config"
)

// NewSession creates an AWS session. Static credentials are used when both
// keys are set; otherwise the default provider chain applies.
func NewSession(c config.AWSConfig) (*session.Session, error) {
	cfg := aws.NewConfig().
		WithRegion(c.Region).
		WithS3ForcePathStyle(c.S3ForcePathStyle)
	if c.Endpoint != "" {
		cfg = cfg.WithEndpoint(c.Endpoint)
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(c.AccessKeyID, c.SecretAccessKey, ""))
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return sess, nil
}
