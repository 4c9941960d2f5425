// Package httpserver builds the HTTP server with sane defaults for this project.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server around the given handler.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
