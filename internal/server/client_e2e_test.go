package server_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gostones/resumeupload/internal/config"
	"github.com/gostones/resumeupload/internal/document"
	"github.com/gostones/resumeupload/internal/server"
	"github.com/gostones/resumeupload/internal/uploader"
	"github.com/gostones/resumeupload/mocks"
)

func startBackend(t *testing.T) (*uploader.Client, *mocks.MockObjectStore, *mocks.MockTextDetector) {
	t.Helper()
	cfg := config.DefaultConfig.Server
	cfg.Bucket = "e2e"

	store := new(mocks.MockObjectStore)
	detector := new(mocks.MockTextDetector)
	srv := httptest.NewServer(server.New(cfg, store, detector, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)

	return uploader.New(srv.URL, uploader.WithLogger(zerolog.Nop())), store, detector
}

func TestClientAgainstBackend(t *testing.T) {
	client, store, detector := startBackend(t)
	ctx := context.Background()

	file, err := document.Open("../document/testdata/resume.pdf")
	require.NoError(t, err)
	defer file.Close()
	md5, _, err := file.MD5()
	require.NoError(t, err)

	store.On("Put", mock.Anything, "e2e", "uploads/resume.pdf", document.TypePDF, md5, mock.Anything).Return(nil)
	detector.On("DetectLines", mock.Anything, "e2e", "uploads/resume.pdf").Return([]string{"Jane Doe", "Go, AWS"}, nil)

	health, err := client.CheckHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["status"])

	var started, succeeded int
	out, err := client.HandleFileUpload(ctx, file, uploader.Callbacks{
		OnStart:   func() { started++ },
		OnSuccess: func(*uploader.Outcome) { succeeded++ },
		OnError:   func(err error) { t.Errorf("unexpected error: %v", err) },
	})
	require.NoError(t, err)
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, "uploads/resume.pdf", out.Upload.Key)
	assert.Equal(t, "Jane Doe\nGo, AWS\n", out.Processing["extractedText"])

	b64, err := client.UploadFileAsBase64(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, "uploads/resume.pdf", b64.Key)

	store.AssertNumberOfCalls(t, "Put", 2)
}

func TestClientSurfacesBackendErrors(t *testing.T) {
	client, store, _ := startBackend(t)
	ctx := context.Background()

	store.On("Put", mock.Anything, "e2e", "uploads/cv.pdf", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("bucket not found"))

	var gotErr error
	_, err := client.HandleFileUpload(ctx, document.FromBytes("cv.pdf", "", []byte("%PDF-1.4")), uploader.Callbacks{
		OnError: func(err error) { gotErr = err },
	})
	var ae *uploader.ApplicationError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Failed to upload file: bucket not found", ae.Message)
	assert.Same(t, err, gotErr)

	result, err := client.ProcessResume(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, uploader.ProcessingResult{"error": "File key is required"}, result)
}
