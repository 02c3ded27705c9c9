package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// PinnerService adds receipt files to an IPFS node over its HTTP API and
// returns the content identifier. Pinning failures never block expense
// creation; callers retry or leave the CID empty.
type PinnerService struct {
	apiURL     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewPinnerService(apiURL string, logger *zap.Logger) *PinnerService {
	return &PinnerService{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// Enabled reports whether an IPFS node is configured.
func (s *PinnerService) Enabled() bool {
	return s.apiURL != ""
}

// Pin uploads the file at path and returns its CID.
func (s *PinnerService) Pin(ctx context.Context, path string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("no IPFS node configured")
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to buffer file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	url := s.apiURL + "/api/v0/add?cid-version=1&pin=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("IPFS add failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("IPFS add returned %d: %s", resp.StatusCode, data)
	}

	var result struct {
		Hash string `json:"Hash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode IPFS response: %w", err)
	}
	if result.Hash == "" {
		return "", fmt.Errorf("IPFS response missing hash")
	}

	s.logger.Info("Receipt pinned",
		zap.String("file", filepath.Base(path)),
		zap.String("cid", result.Hash),
	)

	return result.Hash, nil
}
