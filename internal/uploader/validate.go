package uploader

import (
	"fmt"

	"github.com/gostones/resumeupload/internal/document"
)

// MaxFileSize is the largest accepted resume, in bytes.
const MaxFileSize = 10 * 1024 * 1024

var allowedTypes = map[string]bool{
	document.TypePDF:  true,
	document.TypeDOC:  true,
	document.TypeDOCX: true,
}

// ValidateFile reports whether file is an accepted resume: a PDF or Word
// document of at most MaxFileSize bytes. Rejections are logged.
func (r *Client) ValidateFile(file File) bool {
	return r.validate(file) == nil
}

func (r *Client) validate(file File) error {
	if !allowedTypes[file.ContentType()] {
		r.log.Warn().Str("file", file.Name()).Str("type", file.ContentType()).Msg("invalid file type")
		return &ValidationError{Reason: fmt.Sprintf("type %q not allowed", file.ContentType())}
	}
	if file.Size() > MaxFileSize {
		r.log.Warn().Str("file", file.Name()).Int64("size", file.Size()).Msg("file too large")
		return &ValidationError{Reason: fmt.Sprintf("size %d exceeds %d bytes", file.Size(), MaxFileSize)}
	}
	return nil
}
