// Package mock provides the HTTP mock response entity held by the registry
// and the request snapshot it is matched against.
package mock

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/getmockd/mockreg/internal/matching"
	"github.com/getmockd/mockreg/pkg/registry"
)

// Response is a registered mock: the request criteria it answers and the
// reply it describes.
//
// Two responses are equal when their methods (case-insensitively) and URLs
// are equal. IDs, extra match criteria and replies are ignored, so Replace
// swaps what an endpoint serves and Remove drops every mock for an endpoint.
type Response struct {
	// ID is a unique identifier. New assigns a UUID.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is a human-readable name for the mock
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Method is the HTTP method to answer. Empty answers any method.
	Method string `json:"method,omitempty" yaml:"method,omitempty"`

	// URL is a full URL or a path. It may contain "*" wildcards, "**" globs,
	// {name} segments and a query string of required parameters.
	URL string `json:"url" yaml:"url"`

	// Match holds additional request criteria.
	Match *Match `json:"match,omitempty" yaml:"match,omitempty"`

	// Reply describes the response to serve.
	Reply Reply `json:"response,omitempty" yaml:"response,omitempty"`
}

// Match defines request criteria beyond method and URL.
type Match struct {
	URLPattern   string                 `json:"urlPattern,omitempty" yaml:"urlPattern,omitempty"`
	Query        map[string]string      `json:"query,omitempty" yaml:"query,omitempty"`
	Headers      map[string]string      `json:"headers,omitempty" yaml:"headers,omitempty"`
	BodyEquals   string                 `json:"bodyEquals,omitempty" yaml:"bodyEquals,omitempty"`
	BodyContains string                 `json:"bodyContains,omitempty" yaml:"bodyContains,omitempty"`
	BodyPattern  string                 `json:"bodyPattern,omitempty" yaml:"bodyPattern,omitempty"`
	BodyJSONPath map[string]interface{} `json:"bodyJsonPath,omitempty" yaml:"bodyJsonPath,omitempty"`
	BodyXPath    map[string]string      `json:"bodyXPath,omitempty" yaml:"bodyXPath,omitempty"`
	Expr         string                 `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// Reply specifies the HTTP response a mock describes. The registry never
// builds responses; callers read this to produce one.
type Reply struct {
	Status      int               `json:"status,omitempty" yaml:"status,omitempty"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`
	ContentType string            `json:"contentType,omitempty" yaml:"contentType,omitempty"`
}

// StatusCode returns the reply status, defaulting to 200.
func (r Reply) StatusCode() int {
	if r.Status == 0 {
		return http.StatusOK
	}
	return r.Status
}

// New creates a Response for method and url with a fresh ID.
func New(method, url string) *Response {
	return &Response{
		ID:     uuid.NewString(),
		Method: strings.ToUpper(method),
		URL:    url,
	}
}

// Registry is the registry type responses are held in.
type Registry = registry.Registry[*Request, *Response]

// NewRegistry creates an empty default-strategy registry of responses.
func NewRegistry(opts ...registry.Option) *registry.DefaultRegistry[*Request, *Response] {
	return registry.New[*Request, *Response](opts...)
}

// Matches reports whether req satisfies the response's criteria. When it
// does not, the reason lists every mismatch.
func (r *Response) Matches(req *Request) (bool, string) {
	return matching.Match(r.Criteria(), req.input())
}

// Equal reports whether r and other target the same method and URL.
func (r *Response) Equal(other *Response) bool {
	if r == nil || other == nil {
		return r == other
	}
	return strings.EqualFold(r.Method, other.Method) && r.URL == other.URL
}

// Identifier returns the URL, used in registry error messages.
func (r *Response) Identifier() string {
	return r.URL
}

func (r *Response) String() string {
	method := r.Method
	if method == "" {
		method = "*"
	}
	return strings.ToUpper(method) + " " + r.URL
}

// Criteria returns the matching criteria of r.
func (r *Response) Criteria() *matching.Criteria {
	c := &matching.Criteria{
		Method: r.Method,
		URL:    r.URL,
	}
	if m := r.Match; m != nil {
		c.URLPattern = m.URLPattern
		c.Query = m.Query
		c.Headers = m.Headers
		c.BodyEquals = m.BodyEquals
		c.BodyContains = m.BodyContains
		c.BodyPattern = m.BodyPattern
		c.BodyJSONPath = m.BodyJSONPath
		c.BodyXPath = m.BodyXPath
		c.Expr = m.Expr
	}
	return c
}

var _ registry.Entity[*Request, *Response] = (*Response)(nil)

// EnsureID assigns a UUID when r has no ID.
func (r *Response) EnsureID() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
}
