// Package upload resolves the ordering problem between choosing a local
// logo file and owning a persisted café identity: uploads for records that
// do not exist yet are keyed by a client-allocated temporary identity, and
// the upload always completes before the record save is attempted.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cafedesk/cafedesk/api"
)

// Attachment is a local file chosen for upload.
type Attachment struct {
	Name    string
	Size    int64
	Content io.Reader

	closer io.Closer
}

// Open prepares a local file as an attachment, running the client-side
// preflight checks (type and size) before any network activity.
func Open(path string) (*Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, api.NewUploadError(fmt.Errorf("stat logo file: %w", err))
	}
	if err := api.CheckLogoFile(info.Name(), info.Size()); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, api.NewUploadError(fmt.Errorf("open logo file: %w", err))
	}

	return &Attachment{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		Content: f,
		closer:  f,
	}, nil
}

// Close releases the underlying file, if any.
func (a *Attachment) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Uploader is the gateway surface the orchestrator drives.
type Uploader interface {
	UploadLogo(ctx context.Context, cafeID, filename string, file io.Reader) (string, error)
}

// Request describes the asset state of one form submission.
type Request struct {
	// OwnerID is the persisted café identity; empty when the café is being
	// created for the first time.
	OwnerID string

	// Pending is a newly chosen local file, nil when none.
	Pending *Attachment

	// Existing is the logo URL already on the record, nil when none.
	Existing *string

	// Cleared is set when the user removed the attachment during an edit.
	Cleared bool
}

// Orchestrator runs the upload phase of a form submission.
type Orchestrator struct {
	uploader Uploader
	logger   *slog.Logger
	tempID   func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an orchestrator over the given uploader.
func NewOrchestrator(uploader Uploader, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		uploader: uploader,
		logger:   slog.Default(),
		tempID:   NewTempID,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// NewTempID allocates a temporary identity, unique within the session, for
// associating an uploaded asset with a record that has no server-assigned
// id yet.
func NewTempID() string {
	return "temp-" + uuid.NewString()
}

// Resolve runs the upload phase and returns the logo value for the save
// payload: the server-resolved URL of a pending file, the retained
// existing URL, or nil for an explicit null. If the upload fails the save
// must not proceed; the error is returned and nothing was committed.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (*string, error) {
	if req.Pending != nil {
		if err := api.CheckLogoFile(req.Pending.Name, req.Pending.Size); err != nil {
			return nil, err
		}

		storageID := req.OwnerID
		if storageID == "" {
			storageID = o.tempID()
		}

		url, err := o.uploader.UploadLogo(ctx, storageID, req.Pending.Name, req.Pending.Content)
		if err != nil {
			return nil, err
		}
		o.logger.Info("Logo uploaded", "storage_id", storageID, "url", url)
		return api.NormalizeLogo(&url), nil
	}

	if req.Cleared {
		// Explicit null: omission would be ambiguous with "unchanged".
		return nil, nil
	}

	return api.NormalizeLogo(req.Existing), nil
}
