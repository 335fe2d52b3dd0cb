package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

const defaultPort = 8080

func main() {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(shutdownCtx, os.Args[1:], os.Stderr))
}

// parseFlags turns the command line into a server config. -p is the only flag.
func parseFlags(args []string, output io.Writer) (Config, error) {
	flags := flag.NewFlagSet("statserver", flag.ContinueOnError)
	flags.SetOutput(output)
	port := flags.Int("p", defaultPort, "port to listen on")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if flags.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	return Config{Address: fmt.Sprintf(":%d", *port)}, nil
}

// run serves until ctx is cancelled and returns the process exit code.
func run(ctx context.Context, args []string, output io.Writer) int {
	logger := log.New(output, "", log.LstdFlags)

	config, err := parseFlags(args, output)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		logger.Println("Invalid arguments:", err)
		return 2
	}

	s := NewServer(config)
	if err := s.Start(ctx); err != nil {
		logger.Printf("Failed to listen on %s: %v", config.Address, err)
		return 1
	}

	<-ctx.Done()
	return 0
}
