package mock

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/getmockd/mockreg/internal/matching"
)

// Request is an immutable snapshot of an outgoing HTTP request.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

// NewRequest snapshots r. The body is read fully and restored on r so the
// caller can still send it.
func NewRequest(r *http.Request) (*Request, error) {
	var body []byte
	if r.Body != nil && r.Body != http.NoBody {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	return &Request{
		Method: strings.ToUpper(method),
		URL:    r.URL,
		Header: r.Header.Clone(),
		Body:   body,
	}, nil
}

// BuildRequest creates a Request from its parts.
func BuildRequest(method, rawURL string, header http.Header, body []byte) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", rawURL, err)
	}
	if header == nil {
		header = http.Header{}
	}
	if method == "" {
		method = http.MethodGet
	}
	return &Request{
		Method: strings.ToUpper(method),
		URL:    u,
		Header: header,
		Body:   body,
	}, nil
}

func (r *Request) String() string {
	if r.URL == nil {
		return r.Method
	}
	return r.Method + " " + r.URL.String()
}

func (r *Request) input() *matching.Input {
	return &matching.Input{
		Method: r.Method,
		URL:    r.URL,
		Header: r.Header,
		Body:   r.Body,
	}
}
