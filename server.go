package main

import (
	"context"
	"errors"
	"io"
	"net"
	"path/filepath"
	"time"
)

const (
	defaultAddress    = ":8080"
	defaultStaticRoot = "./static"
	maxRequestSize    = 1024

	// Unread request bytes are drained for at most this long and this much
	// before close, so the peer sees FIN after the response rather than RST.
	lingerTimeout  = 500 * time.Millisecond
	maxLingerBytes = 64 << 10
)

func NewServer(config Config) Server {
	if config.Address == "" {
		config.Address = defaultAddress
	}

	if config.StaticRoot == "" {
		config.StaticRoot = defaultStaticRoot
	}
	config.StaticRoot = filepath.Clean(config.StaticRoot)

	logger, logFile := newLogger(config.LogFile)
	s := &server{
		config:  config,
		stats:   NewStatsRegistry(),
		logger:  logger,
		logFile: logFile,
	}
	if config.MaxConnections > 0 {
		s.slots = make(chan struct{}, config.MaxConnections)
	}
	return s
}

// Start binds the listener and returns; connections are accepted in the
// background until ctx is cancelled.
func (s *server) Start(shutdownCtx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Println("Server listening on", listener.Addr())

	go func() {
		<-shutdownCtx.Done()
		if err := listener.Close(); err != nil {
			s.logger.Println("Error closing listener:", err)
		}
		if s.logFile != nil {
			s.logFile.Close()
		}
	}()

	go s.acceptLoop(shutdownCtx, listener)
	return nil
}

func (s *server) acceptLoop(shutdownCtx context.Context, listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if shutdownCtx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}

			s.logger.Println("Error accepting connection:", err)
			continue
		}

		if s.slots != nil {
			select {
			case s.slots <- struct{}{}:
			case <-shutdownCtx.Done():
				conn.Close()
				return
			}
		}
		go s.handleConnection(conn)
	}
}

func (s *server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *server) Stats() Snapshot {
	return s.stats.Snapshot()
}

// handleConnection serves exactly one request and closes the connection.
// The request is counted before anything about it is decided.
func (s *server) handleConnection(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Println("Error closing connection:", err)
		}
		if s.slots != nil {
			<-s.slots
		}
	}()

	if s.config.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout)); err != nil {
			s.logger.Println("Error setting read deadline:", err)
			return
		}
	}

	buf := make([]byte, maxRequestSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			s.logger.Println("Error reading from connection:", err)
		}
		return
	}

	s.stats.RecordRequest(uint64(n))

	w := &sentCounter{w: conn, stats: s.stats}
	if err := s.dispatch(w, buf[:n]); err != nil {
		s.logger.Printf("Error writing response to %s: %v", conn.RemoteAddr(), err)
		return
	}

	s.linger(conn)
}

// linger half-closes the connection and discards whatever is left of the
// request, bounded by lingerTimeout and maxLingerBytes.
func (s *server) linger(conn net.Conn) {
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err != nil {
			s.logger.Println("Error closing write side:", err)
			return
		}
	}

	if err := conn.SetReadDeadline(time.Now().Add(lingerTimeout)); err != nil {
		s.logger.Println("Error setting read deadline:", err)
		return
	}
	io.Copy(io.Discard, io.LimitReader(conn, maxLingerBytes))
}

func (s *server) dispatch(w io.Writer, raw []byte) error {
	req, err := parseRequestLine(raw)
	if err != nil {
		s.logger.Println("Error parsing request:", err)
		return notFound().writeTo(w)
	}

	if req.Method != "GET" {
		return methodNotAllowed().writeTo(w)
	}

	match := classify(req)
	s.logger.Printf(`Request: "%s %s" | Route: %s`, req.Method, req.Path, match.kind)

	switch match.kind {
	case routeStatic:
		return s.serveStatic(w, match.arg)
	case routeStats:
		return s.serveStats(w)
	case routeCalc:
		return s.serveCalc(w, match.arg)
	default:
		return notFound().writeTo(w)
	}
}
