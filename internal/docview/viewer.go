package docview

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/apiclient"
)

// DisplayMode classifies what the viewer does with a document.
type DisplayMode string

const (
	DisplayImage    DisplayMode = "image"    // rendered inline, scalable/rotatable
	DisplayPDF      DisplayMode = "pdf"      // embedded frame
	DisplayDownload DisplayMode = "download" // offered as download only
)

// ModeFor picks the display mode from the MIME type.
func ModeFor(mimeType string) DisplayMode {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return DisplayImage
	case strings.HasPrefix(mimeType, "application/pdf"):
		return DisplayPDF
	default:
		return DisplayDownload
	}
}

// Preview is a materialized document: the blob staged as a local file the
// display surface can address. It must be released exactly once; Release is
// idempotent so every close path may call it safely.
type Preview struct {
	Document apiclient.Document
	Path     string
	MimeType string
	Mode     DisplayMode

	release sync.Once
	onClose func()
}

// Release deletes the staged file. Safe to call more than once; only the
// first call has effect.
func (p *Preview) Release() {
	p.release.Do(func() {
		_ = os.Remove(p.Path)
		if p.onClose != nil {
			p.onClose()
		}
	})
}

// Viewer shows one document at a time. Opening a new preview swaps it in and
// releases the prior one, so at most one preview is live per viewer at any
// moment.
type Viewer struct {
	Fetcher  *Fetcher
	StageDir string // defaults to os.TempDir()

	mu      sync.Mutex
	current *Preview
	live    int // staged files not yet released, for leak checks
}

func NewViewer(f *Fetcher) *Viewer { return &Viewer{Fetcher: f} }

func (v *Viewer) stageDir() string {
	if v.StageDir != "" {
		return v.StageDir
	}
	return os.TempDir()
}

// Open fetches the document and swaps it in as the current preview. Any
// failure, fetch or staging, leaves the existing preview untouched; the old
// one is released only once the new one is fully staged.
func (v *Viewer) Open(ctx context.Context, doc apiclient.Document) (*Preview, error) {
	blob, err := v.Fetcher.Fetch(ctx, doc.DownloadURL)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(v.stageDir(), "docview-"+uuid.NewString())
	if err := os.WriteFile(path, blob.Data, 0o600); err != nil {
		return nil, errors.Wrap(err, "stage document")
	}
	p := &Preview{
		Document: doc,
		Path:     path,
		MimeType: blob.MimeType,
		Mode:     ModeFor(blob.MimeType),
		onClose: func() {
			v.mu.Lock()
			v.live--
			v.mu.Unlock()
		},
	}

	v.mu.Lock()
	old := v.current
	v.current = p
	v.live++
	v.mu.Unlock()
	if old != nil {
		old.Release()
	}
	return p, nil
}

// Close releases the current preview, if any.
func (v *Viewer) Close() {
	v.mu.Lock()
	p := v.current
	v.current = nil
	v.mu.Unlock()
	if p != nil {
		p.Release()
	}
}

// Live reports how many staged files are still unreleased.
func (v *Viewer) Live() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.live
}
