package uploader

import (
	"context"

	"github.com/gostones/resumeupload/internal/types"
)

// Callbacks are lifecycle hooks for HandleFileUpload. Nil hooks are skipped.
// They run on the calling goroutine.
type Callbacks struct {
	OnStart    func()
	OnProgress ProgressFunc
	OnSuccess  func(*Outcome)
	OnError    func(error)
}

// Outcome bundles the upload and processing results of HandleFileUpload.
type Outcome struct {
	Upload     *UploadResult    `json:"upload"`
	Processing ProcessingResult `json:"processing"`
}

func (cb Callbacks) withDefaults() Callbacks {
	if cb.OnStart == nil {
		cb.OnStart = func() {}
	}
	if cb.OnProgress == nil {
		cb.OnProgress = func(int64, int64) {}
	}
	if cb.OnSuccess == nil {
		cb.OnSuccess = func(*Outcome) {}
	}
	if cb.OnError == nil {
		cb.OnError = func(error) {}
	}
	return cb
}

// HandleFileUpload validates file, uploads it with UploadFile and runs
// "extract" processing on the stored key, in that order. A failure at any step
// is passed to OnError once and then returned; nothing is cleaned up on the
// server when processing fails after a successful upload.
func (r *Client) HandleFileUpload(ctx context.Context, file File, cb Callbacks) (*Outcome, error) {
	cb = cb.withDefaults()

	out, err := r.handleFileUpload(ctx, file, cb)
	if err != nil {
		cb.OnError(err)
		return nil, err
	}
	return out, nil
}

func (r *Client) handleFileUpload(ctx context.Context, file File, cb Callbacks) (*Outcome, error) {
	cb.OnStart()

	if err := r.validate(file); err != nil {
		return nil, err
	}

	upload, err := r.UploadFile(ctx, file, cb.OnProgress)
	if err != nil {
		return nil, err
	}
	if upload.Error != "" {
		e := &ApplicationError{Message: upload.Error}
		r.log.Error().Err(e).Str("file", file.Name()).Msg("upload rejected")
		return nil, e
	}

	processing, err := r.ProcessResume(ctx, upload.Key, types.ProcessExtract)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Upload:     upload,
		Processing: processing,
	}
	cb.OnSuccess(out)
	return out, nil
}
