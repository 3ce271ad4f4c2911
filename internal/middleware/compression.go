package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// CompressionConfig controls the gzip middleware.
type CompressionConfig struct {
	// MinSize is the smallest response body, in bytes, worth compressing.
	MinSize int
	// Level is the gzip compression level.
	Level int
	// CompressibleTypes lists the media types eligible for compression.
	CompressibleTypes []string
}

// DefaultCompressionConfig returns defaults covering everything the
// exporter serves: text and OpenMetrics expositions, JSON probe
// payloads and the landing page. Expositions compress extremely well;
// a large library produces hundreds of near-identical sample lines.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize: 1024,
		Level:   gzip.DefaultCompression,
		CompressibleTypes: []string{
			"text/plain",
			"application/openmetrics-text",
			"application/json",
			"text/html",
		},
	}
}

// gzipPool recycles writers at the default level, which is what the
// exporter runs with. Other levels allocate fresh writers.
var gzipPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipResponseWriter holds back the status code and body until enough
// bytes have accumulated to decide whether compression pays off. The
// decision has to fall before anything reaches the wire because it
// changes the Content-Encoding header.
type gzipResponseWriter struct {
	http.ResponseWriter
	config     CompressionConfig
	buffer     []byte
	statusCode int
	gz         *gzip.Writer
	committed  bool
}

func newGzipResponseWriter(w http.ResponseWriter, config CompressionConfig) *gzipResponseWriter {
	return &gzipResponseWriter{
		ResponseWriter: w,
		config:         config,
		statusCode:     http.StatusOK,
		buffer:         make([]byte, 0, config.MinSize+1),
	}
}

// WriteHeader records the status code. The real header write happens
// at commit time.
func (g *gzipResponseWriter) WriteHeader(statusCode int) {
	if !g.committed {
		g.statusCode = statusCode
	}
}

func (g *gzipResponseWriter) Write(data []byte) (int, error) {
	if g.committed {
		return g.sink().Write(data)
	}

	g.buffer = append(g.buffer, data...)
	if len(g.buffer) > g.config.MinSize {
		g.commit()
	}
	return len(data), nil
}

// sink is where body bytes go once the decision has been made.
func (g *gzipResponseWriter) sink() io.Writer {
	if g.gz != nil {
		return g.gz
	}
	return g.ResponseWriter
}

// commit decides compression, writes the header and drains the buffer.
func (g *gzipResponseWriter) commit() {
	if g.committed {
		return
	}
	g.committed = true

	if len(g.buffer) >= g.config.MinSize && g.compressible() {
		// Content-Length no longer matches once the body is encoded
		g.Header().Del("Content-Length")
		g.Header().Set("Content-Encoding", "gzip")
		g.Header().Add("Vary", "Accept-Encoding")
		g.gz = g.newGzipWriter()
	}

	g.ResponseWriter.WriteHeader(g.statusCode)
	g.sink().Write(g.buffer)
	g.buffer = nil
}

// compressible reports whether the response Content-Type is on the
// configured list. Parameters such as charset and the exposition
// version are ignored.
func (g *gzipResponseWriter) compressible() bool {
	contentType := g.Header().Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for _, want := range g.config.CompressibleTypes {
		if mediaType == want {
			return true
		}
	}
	return false
}

func (g *gzipResponseWriter) newGzipWriter() *gzip.Writer {
	if g.config.Level == gzip.DefaultCompression {
		gz := gzipPool.Get().(*gzip.Writer)
		gz.Reset(g.ResponseWriter)
		return gz
	}

	gz, err := gzip.NewWriterLevel(g.ResponseWriter, g.config.Level)
	if err != nil {
		gz = gzip.NewWriter(g.ResponseWriter)
	}
	return gz
}

// Close drains anything still buffered and finishes the gzip stream.
func (g *gzipResponseWriter) Close() error {
	g.commit()

	if g.gz == nil {
		return nil
	}
	err := g.gz.Close()
	if g.config.Level == gzip.DefaultCompression {
		gzipPool.Put(g.gz)
	}
	g.gz = nil
	return err
}

// Flush implements http.Flusher. Flushing forces the decision with
// whatever has been buffered so far.
func (g *gzipResponseWriter) Flush() {
	g.commit()

	if g.gz != nil {
		g.gz.Flush()
	}
	if f, ok := g.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Compression returns a middleware that gzips eligible responses for
// clients that advertise gzip support.
func Compression(config CompressionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			gzw := newGzipResponseWriter(w, config)
			defer gzw.Close()

			next.ServeHTTP(gzw, r)
		})
	}
}
