package apitest

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// Server is a Handler listening on a local httptest server
type Server struct {
	*Handler
	srv *httptest.Server
}

// NewServer starts a plain HTTP fake API
func NewServer(opts ...Option) *Server {
	gin.SetMode(gin.TestMode)
	h := NewHandler(opts...)
	return &Server{Handler: h, srv: httptest.NewServer(h)}
}

// NewTLSServer starts a fake API with a self-signed certificate
func NewTLSServer(opts ...Option) *Server {
	gin.SetMode(gin.TestMode)
	h := NewHandler(opts...)
	return &Server{Handler: h, srv: httptest.NewTLSServer(h)}
}

// URL is the API base URL
func (s *Server) URL() string {
	return s.srv.URL + BasePath
}

// Client returns an http.Client that trusts the server certificate
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

func (s *Server) Close() {
	s.srv.Close()
}
