package docview

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// maxDocumentSize caps how much of a proof document is read into memory.
const maxDocumentSize = 32 << 20 // 32 MiB

// presignedHostSuffixes are object-storage hosts whose links carry their own
// credentials in the URL; sending our bearer token to them would leak it.
var presignedHostSuffixes = []string{
	".amazonaws.com",
	".r2.cloudflarestorage.com",
	".storage.googleapis.com",
	".digitaloceanspaces.com",
}

// IsPresigned reports whether a download URL is a pre-signed object-storage
// link rather than an authenticated API route. Detection is by signature
// query parameter and known storage host patterns.
func IsPresigned(rawURL string) bool {
	if strings.Contains(rawURL, "X-Amz-Signature") {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, suffix := range presignedHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// Blob is a fetched document body with its resolved MIME type.
type Blob struct {
	Data     []byte
	MimeType string
}

// Fetcher retrieves document bodies. API routes get the bearer token;
// pre-signed URLs are fetched as-is.
type Fetcher struct {
	BaseURL    string // prefix for relative download URLs
	Token      string
	HTTPClient *http.Client
}

func NewFetcher(baseURL, token string) *Fetcher {
	return &Fetcher{BaseURL: baseURL, Token: token, HTTPClient: http.DefaultClient}
}

// Fetch downloads a document. Errors carry no retry semantics; the caller
// surfaces them and leaves the viewer state untouched.
func (f *Fetcher) Fetch(ctx context.Context, downloadURL string) (*Blob, error) {
	target := downloadURL
	if strings.HasPrefix(target, "/") {
		target = f.BaseURL + target
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build document request")
	}
	if f.Token != "" && !IsPresigned(downloadURL) {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch document")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch document: status %d", resp.StatusCode)
	}
	// Read one byte past the cap so an oversized body is an error, never a
	// silently truncated blob.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "read document body")
	}
	if len(data) > maxDocumentSize {
		return nil, errors.Errorf("fetch document: body exceeds %d bytes", maxDocumentSize)
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	return &Blob{Data: data, MimeType: mime}, nil
}
