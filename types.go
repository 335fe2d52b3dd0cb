package main

import (
	"context"
	"io"
	"log"
	"net"
	"sync"
	"time"
)

type (
	Server interface {
		Start(ctx context.Context) error
		Addr() net.Addr
		Stats() Snapshot
	}

	Config struct {
		Address        string
		StaticRoot     string
		MaxConnections int
		ReadTimeout    time.Duration
		LogFile        string
	}

	server struct {
		config   Config
		stats    *StatsRegistry
		logger   *log.Logger
		logFile  io.Closer // nil when logging to stderr
		slots    chan struct{} // nil when connections are unbounded
		mu       sync.Mutex
		listener net.Listener
	}
)
