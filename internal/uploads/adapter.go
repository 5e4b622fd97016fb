// Package uploads moves binary assets to the backend upload endpoint and
// tracks each open form's pending image URLs.
package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/sourcegraph/conc/pool"

	"github.com/NKTHUAN-2K5/portfolio/internal/client"
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
)

const uploadFieldName = "image"

// Adapter submits multipart uploads and returns the canonical stored URL.
type Adapter struct {
	uploadURL  string
	httpc      *http.Client
	maxWorkers int
	log        logger.Logger
}

// NewAdapter creates an Adapter posting to baseURL+"/upload".
func NewAdapter(baseURL string, httpc *http.Client, maxWorkers int, log logger.Logger) *Adapter {
	if httpc == nil {
		httpc = client.NewHTTPClient(0)
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Adapter{
		uploadURL:  baseURL + "/upload",
		httpc:      httpc,
		maxWorkers: maxWorkers,
		log:        log,
	}
}

// File is one binary payload queued for upload.
type File struct {
	Name string
	Body io.Reader
}

// Upload wraps the payload in a multipart body and submits it. On success
// the backend's canonical URL for the stored asset is returned.
func (a *Adapter) Upload(ctx context.Context, name string, body io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(uploadFieldName, name)
	if err != nil {
		return "", fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return "", fmt.Errorf("copy upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := a.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	defer res.Body.Close()

	result, err := client.DecodeUploadResult(res)
	if err != nil {
		return "", err
	}
	if result.ImageURL == "" {
		return "", fmt.Errorf("upload %s: backend returned no image url", name)
	}

	a.log.Info("Asset uploaded",
		logger.String("file", name),
		logger.String("url", result.ImageURL),
	)
	return result.ImageURL, nil
}

// UploadAll uploads files concurrently and appends each successful URL to
// the pending collection. Every file is an independent unit of work: one
// failure never blocks the others. URLs land in completion order, not
// initiation order; callers relying on a specific order must upload one
// file at a time.
func (a *Adapter) UploadAll(ctx context.Context, files []File, pending *Pending) []error {
	var (
		p    = pool.New().WithMaxGoroutines(a.maxWorkers)
		errs = make([]error, len(files))
	)

	for i, f := range files {
		p.Go(func() {
			url, err := a.Upload(ctx, f.Name, f.Body)
			if err != nil {
				a.log.Warn("Upload failed",
					logger.String("file", f.Name),
					logger.Error(err),
				)
				errs[i] = err
				return
			}
			pending.Add(url)
		})
	}
	p.Wait()

	var failures []error
	for _, err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}
	return failures
}
