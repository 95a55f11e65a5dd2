package client

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// supportedEncodings is advertised on every request that does not set its own Accept-Encoding.
const supportedEncodings = "gzip, br, zstd"

// apiTransport stamps the User-Agent on outgoing requests and transparently
// decodes gzip, brotli and zstd response bodies.
type apiTransport struct {
	base      http.RoundTripper
	userAgent string
}

func newAPITransport(base http.RoundTripper, userAgent string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &apiTransport{base: base, userAgent: userAgent}
}

func (t *apiTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", supportedEncodings)
	}
	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decoded, err := decodeBody(outermostEncoding(resp.Header.Get("Content-Encoding")), resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	if decoded == nil {
		return resp, nil
	}

	resp.Body = decoded
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

// decodeBody wraps body with the decoder for encoding. It returns nil, nil for
// identity or unknown encodings so the body is passed through untouched.
func decodeBody(encoding string, body io.ReadCloser) (io.ReadCloser, error) {
	switch encoding {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		return &decodedBody{Reader: zr, closers: []io.Closer{zr, body}}, nil
	case "br":
		return &decodedBody{Reader: brotli.NewReader(body), closers: []io.Closer{body}}, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		rc := zr.IOReadCloser()
		return &decodedBody{Reader: rc, closers: []io.Closer{rc, body}}, nil
	}
	return nil, nil
}

// decodedBody closes the decoder and the raw body together.
type decodedBody struct {
	io.Reader
	closers []io.Closer
}

func (d *decodedBody) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// outermostEncoding returns the last coding of a Content-Encoding list, which is
// the one applied last and therefore removed first.
func outermostEncoding(header string) string {
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
