package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gostones/resumeupload/internal/document"
	"github.com/gostones/resumeupload/internal/types"
)

const defaultFileName = "resume.pdf"

// uploadInput is a file received either as a multipart part (data) or as
// base64 text inside JSON (encoded).
type uploadInput struct {
	fileName string
	fileType string
	data     []byte
	encoded  string
	hasFile  bool
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var in *uploadInput
	var err error
	if isMultipart(r) {
		in, err = s.readMultipart(r)
	} else {
		in, err = readBase64JSON(r)
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.storeUpload(r.Context(), in))
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func (s *Server) readMultipart(r *http.Request) (*uploadInput, error) {
	if err := r.ParseMultipartForm(s.maxBodyBytes); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	in := &uploadInput{
		fileName: r.FormValue("fileName"),
		fileType: r.FormValue("fileType"),
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if in.data, err = io.ReadAll(file); err != nil {
		return nil, err
	}
	in.hasFile = len(in.data) > 0
	if in.fileName == "" {
		in.fileName = header.Filename
	}
	return in, nil
}

func readBase64JSON(r *http.Request) (*uploadInput, error) {
	var body types.Base64UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode request body: %w", err)
	}
	return &uploadInput{
		fileName: body.FileName,
		fileType: body.FileType,
		encoded:  body.File,
		hasFile:  body.File != "",
	}, nil
}

// storeUpload writes the file to the bucket under uploads/. Failures are
// reported in the body of a 200 response.
func (s *Server) storeUpload(ctx context.Context, in *uploadInput) *types.UploadResponse {
	logger := zerolog.Ctx(ctx)

	if !in.hasFile {
		return &types.UploadResponse{Error: "No file data provided"}
	}

	data := in.data
	if in.encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(in.encoded)
		if err != nil {
			logger.Warn().Err(err).Msg("invalid base64 payload")
			return &types.UploadResponse{Error: fmt.Sprintf("Failed to upload file: %v", err)}
		}
		data = decoded
	}

	fileName := cleanFileName(in.fileName)
	contentType := in.fileType
	if contentType == "" {
		contentType = document.TypeByName(fileName)
	}
	if contentType == "" {
		contentType = document.TypePDF
	}
	key := "uploads/" + fileName

	md5, _, err := document.MD5Sum(bytes.NewReader(data))
	if err != nil {
		return &types.UploadResponse{Error: fmt.Sprintf("Failed to upload file: %v", err)}
	}
	if err := s.store.Put(ctx, s.bucket, key, contentType, md5, data); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("store failed")
		return &types.UploadResponse{Error: fmt.Sprintf("Failed to upload file: %v", err)}
	}

	logger.Info().Str("bucket", s.bucket).Str("key", key).Int("bytes", len(data)).Msg("file stored")
	return &types.UploadResponse{
		Message:  "File uploaded successfully",
		FileName: fileName,
		Key:      key,
	}
}

// cleanFileName drops any directory part so keys stay under uploads/.
func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return defaultFileName
	}
	return name
}
