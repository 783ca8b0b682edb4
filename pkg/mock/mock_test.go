package mock

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockreg/pkg/registry"
)

func mustRequest(t *testing.T, method, rawURL string, body string) *Request {
	t.Helper()
	req, err := BuildRequest(method, rawURL, nil, []byte(body))
	require.NoError(t, err)
	return req
}

func withReply(r *Response, body string) *Response {
	r.Reply = Reply{Status: http.StatusOK, Body: body}
	return r
}

// =============================================================================
// Entity behaviour
// =============================================================================

func TestNew_AssignsID(t *testing.T) {
	a := New("get", "http://example.com/a")
	b := New("GET", "http://example.com/a")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "GET", a.Method)
}

func TestResponse_Equal(t *testing.T) {
	base := New("GET", "http://example.com/users")

	tests := []struct {
		name  string
		other *Response
		want  bool
	}{
		{"same method and url", New("GET", "http://example.com/users"), true},
		{"method case", &Response{Method: "get", URL: "http://example.com/users"}, true},
		{"different reply", withReply(New("GET", "http://example.com/users"), "other"), true},
		{"different criteria", &Response{Method: "GET", URL: "http://example.com/users", Match: &Match{BodyContains: "x"}}, true},
		{"different method", New("POST", "http://example.com/users"), false},
		{"different url", New("GET", "http://example.com/orders"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}

func TestResponse_Matches(t *testing.T) {
	r := &Response{
		Method: "POST",
		URL:    "http://example.com/orders",
		Match: &Match{
			Headers:      map[string]string{"Content-Type": "application/json*"},
			BodyJSONPath: map[string]interface{}{"$.qty": 2},
		},
	}

	req, err := BuildRequest("post", "http://example.com/orders", http.Header{
		"Content-Type": []string{"application/json; charset=utf-8"},
	}, []byte(`{"qty":2}`))
	require.NoError(t, err)

	ok, reason := r.Matches(req)
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = r.Matches(mustRequest(t, "GET", "http://example.com/orders", `{"qty":3}`))
	assert.False(t, ok)
	assert.Contains(t, reason, "method mismatch: expected POST, got GET")
	assert.Contains(t, reason, "header mismatch: Content-Type")
	assert.Contains(t, reason, "body JSONPath mismatch: $.qty expected 2")
}

func TestResponse_AnyMethod(t *testing.T) {
	r := &Response{URL: "/health"}

	for _, method := range []string{"GET", "HEAD", "DELETE"} {
		ok, _ := r.Matches(mustRequest(t, method, "http://svc.local/health", ""))
		assert.True(t, ok, method)
	}
	assert.Equal(t, "* /health", r.String())
}

// =============================================================================
// Requests
// =============================================================================

func TestNewRequest_RestoresBody(t *testing.T) {
	httpReq, err := http.NewRequest("put", "http://example.com/items/1", strings.NewReader("payload"))
	require.NoError(t, err)
	httpReq.Header.Set("X-Trace", "abc")

	req, err := NewRequest(httpReq)
	require.NoError(t, err)

	assert.Equal(t, "PUT", req.Method)
	assert.Equal(t, []byte("payload"), req.Body)
	assert.Equal(t, "abc", req.Header.Get("X-Trace"))
	assert.Equal(t, "PUT http://example.com/items/1", req.String())

	again, err := io.ReadAll(httpReq.Body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(again))

	httpReq.Header.Set("X-Trace", "changed")
	assert.Equal(t, "abc", req.Header.Get("X-Trace"), "snapshot must not alias the original headers")
}

func TestNewRequest_NoBody(t *testing.T) {
	httpReq, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	require.NoError(t, err)

	req, err := NewRequest(httpReq)
	require.NoError(t, err)
	assert.Nil(t, req.Body)
}

func TestBuildRequest_InvalidURL(t *testing.T) {
	_, err := BuildRequest("GET", "http://[::1", nil, nil)
	assert.Error(t, err)
}

// =============================================================================
// Registry integration
// =============================================================================

func TestRegistry_SequentialResponses(t *testing.T) {
	reg := NewRegistry()
	reg.Add(withReply(New("GET", "http://example.com/status"), "pending"))
	reg.Add(withReply(New("GET", "http://example.com/status"), "running"))
	reg.Add(withReply(New("GET", "http://example.com/status"), "done"))

	var bodies []string
	for i := 0; i < 4; i++ {
		resp, err := Find(reg, mustRequest(t, "GET", "http://example.com/status", ""))
		require.NoError(t, err)
		bodies = append(bodies, resp.Reply.Body)
	}

	assert.Equal(t, []string{"pending", "running", "done", "done"}, bodies)
}

func TestRegistry_ReplaceSwapsReply(t *testing.T) {
	reg := NewRegistry()
	reg.Add(withReply(New("GET", "http://example.com/a"), "one"))
	reg.Add(withReply(New("GET", "http://example.com/b"), "b"))

	require.NoError(t, reg.Replace(withReply(New("GET", "http://example.com/a"), "two")))

	registered := reg.Registered()
	require.Len(t, registered, 2)
	assert.Equal(t, "two", registered[0].Reply.Body)
	assert.Equal(t, "b", registered[1].Reply.Body)

	err := reg.Replace(New("POST", "http://example.com/a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrNotRegistered))
	assert.Equal(t, "response is not registered for URL http://example.com/a", err.Error())
}

func TestRegistry_RemoveDropsEndpoint(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New("GET", "http://example.com/a"))
	reg.Add(New("GET", "http://example.com/b"))
	reg.Add(New("get", "http://example.com/a"))

	reg.Remove(New("GET", "http://example.com/a"))

	registered := reg.Registered()
	require.Len(t, registered, 1)
	assert.Equal(t, "http://example.com/b", registered[0].URL)
}

func TestFind_NoMatchError(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New("GET", "http://example.com/users"))
	reg.Add(New("POST", "http://example.com/orders"))

	resp, err := Find(reg, mustRequest(t, "DELETE", "http://example.com/orders", ""))
	require.Nil(t, resp)
	require.Error(t, err)

	var nme *NoMatchError
	require.ErrorAs(t, err, &nme)
	assert.Len(t, nme.Candidates, 2)
	assert.Len(t, nme.Reasons, 2)

	msg := err.Error()
	assert.Contains(t, msg, "Request:\n- DELETE http://example.com/orders")
	assert.Contains(t, msg, "- GET http://example.com/users: method mismatch: expected GET, got DELETE; URL mismatch")
	assert.Contains(t, msg, "- POST http://example.com/orders: method mismatch: expected POST, got DELETE")
}

func TestFind_EmptyRegistry(t *testing.T) {
	_, err := Find(NewRegistry(), mustRequest(t, "GET", "http://example.com/", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No mocks are registered.")
}

// =============================================================================
// Validation
// =============================================================================

func TestResponse_Validate(t *testing.T) {
	tests := []struct {
		name      string
		resp      *Response
		wantField string
	}{
		{"valid", &Response{Method: "GET", URL: "/ok", Reply: Reply{Status: 201}}, ""},
		{"missing url", &Response{Method: "GET"}, "url"},
		{"custom method", &Response{Method: "PURGE", URL: "/x"}, ""},
		{"trace method", &Response{Method: "TRACE", URL: "/x"}, ""},
		{"method with space", &Response{Method: "GE T", URL: "/x"}, "method"},
		{"method with separator", &Response{Method: "GET/1", URL: "/x"}, "method"},
		{"bad header name", &Response{URL: "/x", Match: &Match{Headers: map[string]string{"Bad Header": "v"}}}, "match.headers"},
		{"bad regex", &Response{URL: "/x", Match: &Match{BodyPattern: "("}}, "match"},
		{"bad status", &Response{URL: "/x", Reply: Reply{Status: 700}}, "response.status"},
		{"bad reply header", &Response{URL: "/x", Reply: Reply{Headers: map[string]string{"a b": "c"}}}, "response.headers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestReply_StatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, Reply{}.StatusCode())
	assert.Equal(t, http.StatusTeapot, Reply{Status: http.StatusTeapot}.StatusCode())
}
