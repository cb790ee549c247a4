package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type compressCase struct {
	method         string
	acceptEncoding string
	contentType    string
	encoding       string
	status         int
	body           string
}

func serveCompressed(t *testing.T, level int, c compressCase) *http.Response {
	t.Helper()
	if c.method == "" {
		c.method = http.MethodGet
	}
	if c.status == 0 {
		c.status = http.StatusOK
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if c.contentType != "" {
			w.Header().Set("Content-Type", c.contentType)
		}
		if c.encoding != "" {
			w.Header().Set("Content-Encoding", c.encoding)
		}
		w.WriteHeader(c.status)
		if c.body != "" {
			_, _ = io.WriteString(w, c.body)
		}
	})

	req := httptest.NewRequest(c.method, "/", nil)
	if c.acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", c.acceptEncoding)
	}
	rec := httptest.NewRecorder()
	Compression(CompressionConfig{Level: level})(handler).ServeHTTP(rec, req)

	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestCompression_RoundTrip(t *testing.T) {
	body := strings.Repeat("The visor remembers. ", 500)

	for _, level := range []int{1, 6, 9, 0, 42} {
		resp := serveCompressed(t, level, compressCase{
			acceptEncoding: "gzip, deflate",
			contentType:    "text/html; charset=utf-8",
			body:           body,
		})

		require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"), "level %d", level)
		assert.Equal(t, "Accept-Encoding", resp.Header.Get("Vary"))

		zr, err := gzip.NewReader(resp.Body)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, body, string(got))
	}
}

func TestCompression_SmallBodiesSurvive(t *testing.T) {
	resp := serveCompressed(t, 6, compressCase{
		acceptEncoding: "gzip",
		contentType:    "application/json",
		body:           `{"status":"ok"}`,
	})

	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	got, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(got))
}

func TestCompression_Skips(t *testing.T) {
	tests := []struct {
		name string
		c    compressCase
	}{
		{"no accept-encoding", compressCase{contentType: "text/html", body: "x"}},
		{"deflate only", compressCase{acceptEncoding: "deflate", contentType: "text/html", body: "x"}},
		{"gzip q=0", compressCase{acceptEncoding: "gzip;q=0", contentType: "text/html", body: "x"}},
		{"HEAD", compressCase{method: http.MethodHead, acceptEncoding: "gzip", contentType: "text/html"}},
		{"204", compressCase{acceptEncoding: "gzip", status: http.StatusNoContent}},
		{"304", compressCase{acceptEncoding: "gzip", status: http.StatusNotModified}},
		{"png", compressCase{acceptEncoding: "gzip", contentType: "image/png", body: "x"}},
		{"ico", compressCase{acceptEncoding: "gzip", contentType: "image/x-icon", body: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serveCompressed(t, 6, tt.c)
			assert.Empty(t, resp.Header.Get("Content-Encoding"))
		})
	}
}

func TestCompression_KeepsExistingEncoding(t *testing.T) {
	resp := serveCompressed(t, 6, compressCase{
		acceptEncoding: "gzip",
		contentType:    "text/html",
		encoding:       "br",
		body:           "already compressed",
	})

	assert.Equal(t, "br", resp.Header.Get("Content-Encoding"))
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "already compressed", string(got))
}

func TestCompression_ErrorPagesCompressed(t *testing.T) {
	resp := serveCompressed(t, 6, compressCase{
		acceptEncoding: "gzip",
		contentType:    "text/html",
		status:         http.StatusNotFound,
		body:           "<h1>Signal Lost</h1>",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
}

func TestAcceptsGzip(t *testing.T) {
	tests := map[string]bool{
		"gzip":             true,
		"GZIP":             true,
		"gzip;q=0.5":       true,
		"deflate, gzip":    true,
		"*":                true,
		"gzip;q=0":         false,
		"gzip; q=0.0":      false,
		"deflate":          false,
		"":                 false,
		"br;q=1, identity": false,
	}
	for header, want := range tests {
		assert.Equal(t, want, acceptsGzip(header), header)
	}
}
