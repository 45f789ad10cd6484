// Package types holds the JSON bodies exchanged between the upload client
// and the resume backend.
package types

// Base64UploadRequest is the JSON form of POST /upload.
type Base64UploadRequest struct {
	File     string `json:"file"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType,omitempty"`
}

// UploadResponse is returned by POST /upload. A transport-level success may
// still carry Error.
type UploadResponse struct {
	Message  string `json:"message,omitempty"`
	FileName string `json:"fileName,omitempty"`
	Key      string `json:"key,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ProcessRequest struct {
	FileKey        string `json:"fileKey"`
	ProcessingType string `json:"processingType"`
}

type ProcessResponse struct {
	Message        string    `json:"message,omitempty"`
	ExtractedText  *string   `json:"extractedText,omitempty"`
	Analysis       *Analysis `json:"analysis,omitempty"`
	ProcessingType string    `json:"processingType,omitempty"`
	Error          string    `json:"error,omitempty"`
}

type Analysis struct {
	Skills    []string `json:"skills"`
	LineCount int      `json:"lineCount"`
	WordCount int      `json:"wordCount"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of 404 and 500 responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
	Method  string `json:"method,omitempty"`
}

// Processing types understood by the backend.
const (
	ProcessExtract = "extract"
	ProcessAnalyze = "analyze"
)
