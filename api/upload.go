package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// maxLogoSize is the largest logo file the service accepts.
const maxLogoSize = 2 * 1024 * 1024 // 2MB

// CheckLogoFile validates a logo file before any network call: only PNG and
// JPEG are accepted, at most 2MB.
func CheckLogoFile(filename string, size int64) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg":
	default:
		return NewUploadError(fmt.Errorf("%s: only JPG/PNG files can be uploaded", filename))
	}
	if size > maxLogoSize {
		return NewUploadError(fmt.Errorf("%s: image must be smaller than 2MB", filename))
	}
	return nil
}

// UploadLogo uploads a logo file for the café identified by cafeID, which
// may be a temporary identity for a not-yet-persisted café. It returns the
// server-resolved asset URL. All failures are UploadErrors.
func (g *Gateway) UploadLogo(ctx context.Context, cafeID, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", NewUploadError(fmt.Errorf("build multipart body: %w", err))
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", NewUploadError(fmt.Errorf("read logo file: %w", err))
	}
	if err := writer.Close(); err != nil {
		return "", NewUploadError(fmt.Errorf("finalize multipart body: %w", err))
	}

	reqURL := g.baseURL + "/cafes/upload-logo/" + cafeID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return "", NewUploadError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	g.logger.Debug("Uploading logo", "cafe_id", cafeID, "file", filename)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", NewUploadError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", NewUploadError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", NewUploadError(fmt.Errorf("status %d: %s", resp.StatusCode, serverMessage(respBody)))
	}

	var result struct {
		LogoURL string `json:"logoUrl"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", NewUploadError(fmt.Errorf("decode response: %w", err))
	}
	return result.LogoURL, nil
}
