// Package uploader is the client side of the resume service: it uploads
// resume files, asks the backend to process them and checks its health.
package uploader

import (
	"context"
	"encoding/base64"
	"io"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gostones/resumeupload/internal/types"
)

// DefaultBaseURL is the local development backend.
const DefaultBaseURL = "http://localhost:5000"

// RequestIDHeader is set on every outgoing request.
const RequestIDHeader = "X-Request-ID"

const jsonContentType = "application/json"

// File is the read-only view of a resume the client needs. Reader must
// return a reader positioned at the start of the content on every call.
type File interface {
	Name() string
	ContentType() string
	Size() int64
	Reader() (io.Reader, error)
}

// ProgressFunc receives byte progress for an upload.
type ProgressFunc func(sent, total int64)

// UploadResult is the body of a successful upload call.
type UploadResult = types.UploadResponse

// ProcessingResult is the backend's processing payload, passed through as is.
type ProcessingResult map[string]interface{}

// HealthStatus is the backend's health payload, passed through as is.
type HealthStatus map[string]interface{}

// Client talks to one backend. The base URL is fixed at construction and the
// client is safe for concurrent use.
type Client struct {
	baseURL string
	c       *resty.Client
	log     zerolog.Logger
}

type Option func(*Client)

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Client) {
		r.log = l
	}
}

// New creates a client for baseURL, or DefaultBaseURL when baseURL is empty.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	r := &Client{
		baseURL: baseURL,
		log:     log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.c = resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", jsonContentType).
		OnBeforeRequest(setRequestID)
	return r
}

func setRequestID(_ *resty.Client, req *resty.Request) error {
	if req.Header.Get(RequestIDHeader) == "" {
		req.SetHeader(RequestIDHeader, uuid.NewString())
	}
	return nil
}

func (r *Client) BaseURL() string {
	return r.baseURL
}

// UploadFile posts file as multipart form data (parts "file" and "fileName")
// to /upload. The multipart boundary header is written by the transport.
//
// onProgress is accepted for callers that want to report progress but is not
// called yet.
func (r *Client) UploadFile(ctx context.Context, file File, onProgress ProgressFunc) (*UploadResult, error) {
	rd, err := file.Reader()
	if err != nil {
		return nil, r.readError(file, err)
	}

	var result UploadResult
	req := r.c.R().
		SetContext(ctx).
		SetFileReader("file", file.Name(), rd).
		SetFormData(map[string]string{"fileName": file.Name()}).
		SetResult(&result).
		ForceContentType(jsonContentType)
	if _, err := r.do("upload", req, resty.MethodPost, "/upload"); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadFileAsBase64 reads the whole file into memory and posts it to /upload
// as base64 text inside a JSON body.
func (r *Client) UploadFileAsBase64(ctx context.Context, file File) (*UploadResult, error) {
	rd, err := file.Reader()
	if err != nil {
		return nil, r.readError(file, err)
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, r.readError(file, err)
	}

	var result UploadResult
	req := r.c.R().
		SetContext(ctx).
		SetHeader("Content-Type", jsonContentType).
		SetBody(&types.Base64UploadRequest{
			File:     base64.StdEncoding.EncodeToString(data),
			FileName: file.Name(),
			FileType: file.ContentType(),
		}).
		SetResult(&result).
		ForceContentType(jsonContentType)
	if _, err := r.do("upload", req, resty.MethodPost, "/upload"); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProcessResume asks the backend to process an uploaded file. An empty
// processingType means "extract".
func (r *Client) ProcessResume(ctx context.Context, fileKey, processingType string) (ProcessingResult, error) {
	if processingType == "" {
		processingType = types.ProcessExtract
	}

	var result ProcessingResult
	req := r.c.R().
		SetContext(ctx).
		SetHeader("Content-Type", jsonContentType).
		SetBody(&types.ProcessRequest{
			FileKey:        fileKey,
			ProcessingType: processingType,
		}).
		SetResult(&result).
		ForceContentType(jsonContentType)
	if _, err := r.do("process", req, resty.MethodPost, "/process"); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Client) CheckHealth(ctx context.Context) (HealthStatus, error) {
	var result HealthStatus
	req := r.c.R().
		SetContext(ctx).
		SetResult(&result).
		ForceContentType(jsonContentType)
	if _, err := r.do("health", req, resty.MethodGet, "/health"); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Client) do(op string, req *resty.Request, method, route string) (*resty.Response, error) {
	resp, err := req.Execute(method, route)
	if err != nil {
		e := &TransportError{Op: op, Err: err}
		if resp != nil {
			e.StatusCode = resp.StatusCode()
		}
		r.log.Error().Err(e).Str("op", op).Str("url", r.baseURL+route).Msg("request failed")
		return nil, e
	}
	if !resp.IsSuccess() {
		e := &TransportError{Op: op, StatusCode: resp.StatusCode()}
		r.log.Error().Err(e).Str("op", op).Str("url", r.baseURL+route).Msg("request failed")
		return nil, e
	}

	r.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Str("request_id", resp.Request.Header.Get(RequestIDHeader)).
		Msg("request complete")
	return resp, nil
}

func (r *Client) readError(file File, err error) error {
	e := &ReadError{Name: file.Name(), Err: err}
	r.log.Error().Err(e).Msg("read failed")
	return e
}
