package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/ninjapark/rollsync/internal/export"
)

type BrotliConfig struct {
	Quality   int
	MinLength int
	Skipper   func(c *gin.Context) bool
	// StoredTypes are Content-Type prefixes sent as-is because the payload
	// is already compressed.
	StoredTypes []string
}

var DefaultBrotliConfig = BrotliConfig{
	Quality:     brotli.DefaultCompression,
	MinLength:   1024,
	StoredTypes: []string{export.ContentTypeXLSX, "application/zip"},
}

type writeMode int

const (
	modePending writeMode = iota
	modeCompress
	modePlain
)

// brotliWriter holds back the first MinLength bytes so small envelopes go out
// uncompressed, then commits to one mode for the rest of the response.
type brotliWriter struct {
	gin.ResponseWriter
	cfg    *BrotliConfig
	writer *brotli.Writer
	buf    []byte
	mode   writeMode
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	switch bw.mode {
	case modeCompress:
		return bw.writer.Write(data)
	case modePlain:
		return bw.ResponseWriter.Write(data)
	}

	if bw.stored() {
		bw.mode = modePlain
		return bw.ResponseWriter.Write(data)
	}

	bw.buf = append(bw.buf, data...)
	if len(bw.buf) < bw.cfg.MinLength {
		return len(data), nil
	}

	bw.mode = modeCompress
	h := bw.ResponseWriter.Header()
	h.Set("Content-Encoding", "br")
	h.Del("Content-Length")
	bw.writer = brotli.NewWriterLevel(bw.ResponseWriter, bw.cfg.Quality)
	if _, err := bw.writer.Write(bw.buf); err != nil {
		return 0, err
	}
	bw.buf = nil
	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

// Flush commits a pending response to plain output and forwards the flush.
func (bw *brotliWriter) Flush() {
	switch bw.mode {
	case modeCompress:
		_ = bw.writer.Flush()
	case modePending:
		bw.mode = modePlain
		if len(bw.buf) > 0 {
			_, _ = bw.ResponseWriter.Write(bw.buf)
			bw.buf = nil
		}
	}
	bw.ResponseWriter.Flush()
}

func (bw *brotliWriter) finish() error {
	switch bw.mode {
	case modeCompress:
		return bw.writer.Close()
	case modePending:
		if len(bw.buf) == 0 {
			return nil
		}
		_, err := bw.ResponseWriter.Write(bw.buf)
		bw.buf = nil
		return err
	}
	return nil
}

func (bw *brotliWriter) stored() bool {
	ct := bw.ResponseWriter.Header().Get("Content-Type")
	for _, prefix := range bw.cfg.StoredTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

// Brotli compresses responses for clients that accept "br".
func Brotli() gin.HandlerFunc {
	return BrotliWithConfig(DefaultBrotliConfig)
}

func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < 0 || cfg.Quality > 11 {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	return func(c *gin.Context) {
		if streaming(c) || (cfg.Skipper != nil && cfg.Skipper(c)) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{ResponseWriter: c.Writer, cfg: &cfg}
		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Writer = bw
		c.Next()
	}
}

func streaming(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/event-stream")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}
