// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configserver

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/aws/amazon-mwaa-docker-images/internal/logconfig"

	log "github.com/sirupsen/logrus"
)

// Server serves the logging configuration to processes of the environment
type Server struct {
	host     string
	port     int
	server   *http.Server
	listener net.Listener
}

// NewServer creates a new config server
//
// Listen() and Serve() are separate so that the port is bound before
// the processes reading the configuration are started.
//
// When port is 0, OS will dynamically allocate the listening port.
func NewServer(host string, port int, cfg *logconfig.Config) *Server {
	return &Server{
		host:   host,
		port:   port,
		server: &http.Server{Handler: NewRouter(cfg)},
	}
}

// Listen on port
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.listener = ln
	if s.port == 0 {
		s.port = ln.Addr().(*net.TCPAddr).Port
		log.WithField("port", s.port).Info("Listening port was dynamically allocated")
	}

	log.Debugf("Config server listening on %s:%d", s.host, s.port)

	return nil
}

// Serve requests until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	defer s.Close()

	select {
	case err := <-s.serveAsync():
		return err

	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) serveAsync() chan error {
	errors := make(chan error, 1)
	go func() {
		errors <- s.server.Serve(s.listener)
	}()

	return errors
}

// Port is server's port
func (s *Server) Port() int {
	return s.port
}

// URL is full server url for specified endpoint
func (s *Server) URL(endpoint string) string {
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port)), endpoint)
}

// Close forcefully closes listeners & connections
func (s *Server) Close() error {
	err := s.server.Close()
	if s.listener != nil {
		// Already closed when Serve ran; only an unserved listener needs it.
		_ = s.listener.Close()
	}
	if err == nil {
		log.Info("Config server closed")
	}
	return err
}
