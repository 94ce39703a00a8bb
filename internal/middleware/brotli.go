package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// BrotliConfig tunes the compression middleware.
type BrotliConfig struct {
	Quality int
	// MinLength is the smallest body worth compressing.
	MinLength int
	// Types lists the compressible Content-Type prefixes.
	Types []string
}

var DefaultBrotliConfig = BrotliConfig{
	Quality:   brotli.DefaultCompression,
	MinLength: 1024,
	Types:     []string{"text/html", "text/css", "text/plain", "text/javascript", "application/javascript", "application/json"},
}

// brotliWriter buffers until MinLength bytes are known, then either switches
// to compressed output or passes the buffer through untouched.
type brotliWriter struct {
	gin.ResponseWriter
	cfg     BrotliConfig
	buf     []byte
	bw      *brotli.Writer
	decided bool
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	if w.decided {
		if w.bw != nil {
			return w.bw.Write(data)
		}
		return w.ResponseWriter.Write(data)
	}

	w.buf = append(w.buf, data...)
	if len(w.buf) < w.cfg.MinLength {
		return len(data), nil
	}
	if err := w.decide(true); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// decide settles compression and drains the buffer. big reports whether the
// body reached MinLength.
func (w *brotliWriter) decide(big bool) error {
	w.decided = true
	if big && w.compressible() {
		h := w.ResponseWriter.Header()
		h.Set("Content-Encoding", "br")
		h.Del("Content-Length")
		w.bw = brotli.NewWriterLevel(w.ResponseWriter, w.cfg.Quality)
		_, err := w.bw.Write(w.buf)
		w.buf = nil
		return err
	}
	_, err := w.ResponseWriter.Write(w.buf)
	w.buf = nil
	return err
}

func (w *brotliWriter) compressible() bool {
	ct := w.ResponseWriter.Header().Get("Content-Type")
	for _, t := range w.cfg.Types {
		if strings.HasPrefix(ct, t) {
			return true
		}
	}
	return false
}

func (w *brotliWriter) close() error {
	if !w.decided {
		if err := w.decide(false); err != nil {
			return err
		}
	}
	if w.bw != nil {
		return w.bw.Close()
	}
	return nil
}

// Brotli compresses text responses for clients that accept "br".
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
	if len(cfg.Types) == 0 {
		cfg.Types = DefaultBrotliConfig.Types
	}

	return func(c *gin.Context) {
		// A wrapped writer breaks the WebSocket handshake.
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")
		w := &brotliWriter{ResponseWriter: c.Writer, cfg: cfg}
		c.Writer = w

		c.Next()

		if err := w.close(); err != nil {
			_ = c.Error(err)
		}
	}
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.EqualFold(strings.TrimSpace(strings.SplitN(enc, ";", 2)[0]), "br") {
			return true
		}
	}
	return false
}
