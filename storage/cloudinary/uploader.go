package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/essomba/schoolhub/config"
	"github.com/essomba/schoolhub/storage"
)

// Uploader stores files through the Cloudinary upload API.
type Uploader struct {
	cloudName    string
	uploadPreset string
	apiKey       string
	apiSecret    string
	httpClient   *http.Client
}

func NewUploader(cfg *config.Cloudinary) *Uploader {
	return &Uploader{
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		apiKey:       cfg.APIKey,
		apiSecret:    cfg.APISecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (u *Uploader) Upload(ctx context.Context, filename string, content io.Reader) (*storage.UploadResult, error) {
	var body strings.Builder
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := writer.WriteField("upload_preset", u.uploadPreset); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload", u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("storage error (status %d): %s", resp.StatusCode, string(raw))
	}

	var uploaded struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &storage.UploadResult{URL: uploaded.SecureURL, PublicID: uploaded.PublicID}, nil
}

func (u *Uploader) Delete(ctx context.Context, publicID string) error {
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", u.cloudName)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", u.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(u.apiKey, u.apiSecret)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("storage error (status %d): %s", resp.StatusCode, string(raw))
	}
	return nil
}
