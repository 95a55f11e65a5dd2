package client

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const transportPayload = `[{"id":1,"name":"Firefly"}]`

func compress(t *testing.T, encoding string) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		w := gzip.NewWriter(&buf)
		_, _ = w.Write([]byte(transportPayload))
		_ = w.Close()
	case "br":
		w := brotli.NewWriter(&buf)
		_, _ = w.Write([]byte(transportPayload))
		_ = w.Close()
	case "zstd":
		w, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatalf("zstd.NewWriter: %v", err)
		}
		_, _ = w.Write([]byte(transportPayload))
		_ = w.Close()
	default:
		buf.WriteString(transportPayload)
	}
	return buf.Bytes()
}

func TestAPITransport_Decompresses(t *testing.T) {
	for _, encoding := range []string{"gzip", "br", "zstd", ""} {
		t.Run("encoding="+encoding, func(t *testing.T) {
			var gotAcceptEncoding string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAcceptEncoding = r.Header.Get("Accept-Encoding")
				if encoding != "" {
					w.Header().Set("Content-Encoding", encoding)
				}
				_, _ = w.Write(compress(t, encoding))
			}))
			defer server.Close()

			httpClient := &http.Client{Transport: newAPITransport(nil, "ua")}
			resp, err := httpClient.Get(server.URL)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(body) != transportPayload {
				t.Errorf("Expected decoded payload, got %q", string(body))
			}
			if resp.Header.Get("Content-Encoding") != "" {
				t.Errorf("Expected Content-Encoding to be stripped, got %q", resp.Header.Get("Content-Encoding"))
			}
			if gotAcceptEncoding != supportedEncodings {
				t.Errorf("Expected Accept-Encoding %q, got %q", supportedEncodings, gotAcceptEncoding)
			}
		})
	}
}

func TestAPITransport_DoesNotMutateRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := newAPITransport(nil, "ua").RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	resp.Body.Close()

	if req.Header.Get("Accept-Encoding") != "" || req.Header.Get("User-Agent") != "" {
		t.Error("Expected original request headers to be untouched")
	}
}

func TestAPITransport_InvalidGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write([]byte("definitely not gzip"))
	}))
	defer server.Close()

	httpClient := &http.Client{Transport: newAPITransport(nil, "")}
	if _, err := httpClient.Get(server.URL); err == nil {
		t.Fatal("Expected error for corrupt gzip body")
	}
}

func TestOutermostEncoding(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"gzip", "gzip"},
		{" GZIP ", "gzip"},
		{"gzip, br", "br"},
		{"identity", "identity"},
	}
	for _, tt := range tests {
		if got := outermostEncoding(tt.header); got != tt.want {
			t.Errorf("outermostEncoding(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
