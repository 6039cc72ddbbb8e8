package service

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ninjapark/rollsync/internal/config"
)

// Sentinel errors for document uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Accepted export formats from the scheduling product.
var allowedExtensions = map[string]bool{
	".html":  true,
	".htm":   true,
	".xhtml": true,
}

var allowedMIMETypes = map[string]bool{
	"text/html":             true,
	"application/xhtml+xml": true,
}

// UploadService validates uploaded HTML exports before they reach the
// pipeline.
type UploadService struct {
	cfg *config.Config
}

// NewUploadService creates a new UploadService.
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// Open checks the type and size of an uploaded document and opens it.
// The caller closes the returned file.
func (s *UploadService) Open(header *multipart.FileHeader) (multipart.File, error) {
	if !isHTML(header) {
		return nil, fmt.Errorf("%w: %s (allowed: .html, .htm, .xhtml)", ErrUnsupportedFileType, header.Filename)
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return f, nil
}

// isHTML accepts a known extension or an HTML content type. Browsers send
// saved pages with either one missing often enough that both are honored.
func isHTML(header *multipart.FileHeader) bool {
	if allowedExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	return err == nil && allowedMIMETypes[mediaType]
}
