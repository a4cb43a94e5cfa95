// Package fakegithub serves canned GitHub REST responses to tests.
package fakegithub

import (
	"net/http"
	"net/http/httptest"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Request is what the server saw of one incoming request.
type Request struct {
	URI       string
	UserAgent string
	Accept    string
}

type route struct {
	status      int
	contentType string
	body        []byte
}

// Server answers registered paths with fixed responses and unknown paths
// with GitHub's 404 body.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]route
	requests []Request
}

func NewServer() *Server {
	s := &Server{routes: map[string]route{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle registers a raw body for path. An empty body on a non-2xx status is
// replaced by a GitHub style error message.
func (s *Server) Handle(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = route{status: status, contentType: "application/json", body: []byte(body)}
}

// HandleJSON registers v, encoded as JSON, for path.
func (s *Server) HandleJSON(path string, status int, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Handle(path, status, string(body))
	return nil
}

// HandleBinary registers an octet-stream body for path.
func (s *Server) HandleBinary(path string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = route{status: http.StatusOK, contentType: "application/octet-stream", body: body}
}

// Requests returns the requests served so far, in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// URIs returns the request URIs served so far, in order.
func (s *Server) URIs() []string {
	uris := []string{}
	for _, r := range s.Requests() {
		uris = append(uris, r.URI)
	}
	return uris
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		URI:       r.URL.RequestURI(),
		UserAgent: r.Header.Get("User-Agent"),
		Accept:    r.Header.Get("Accept"),
	})
	rt, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		rt = route{status: http.StatusNotFound, contentType: "application/json"}
	}
	if len(rt.body) == 0 && (rt.status < 200 || rt.status >= 300) {
		rt.body, _ = json.Marshal(map[string]string{"message": http.StatusText(rt.status)})
	}

	w.Header().Set("Content-Type", rt.contentType)
	w.WriteHeader(rt.status)
	w.Write(rt.body)
}
