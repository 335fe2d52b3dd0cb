package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const staticChunkSize = 1024

var ErrInvalidQuery = errors.New("invalid calc query")

const statsPage = "<html><body><h1>Server Stats</h1>" +
	"<p>Requests received: %d</p>" +
	"<p>Total bytes received: %d</p>" +
	"<p>Total bytes sent: %d</p>" +
	"</body></html>"

const calcPage = "<html><body><h1>Calculation Result</h1>" +
	"<p>%d + %d = %d</p></body></html>"

// serveStatic streams StaticRoot+remainder in bounded chunks. Every chunk
// goes through w separately so the sent counter advances as the file does.
func (s *server) serveStatic(w io.Writer, remainder string) error {
	filePath, ok := s.staticPath(remainder)
	if !ok {
		return notFound().writeTo(w)
	}

	file, err := os.Open(filePath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Printf("Error opening %s: %v", filePath, err)
		}
		return notFound().writeTo(w)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		return notFound().writeTo(w)
	}

	resp := &response{status: 200}
	resp.setHeader("Content-Type", contentTypeBinary)
	resp.setHeader("Content-Length", strconv.FormatInt(info.Size(), 10))
	resp.setHeader("Connection", "close")
	if _, err := w.Write(resp.head()); err != nil {
		return err
	}

	buf := make([]byte, staticChunkSize)
	for {
		n, readErr := file.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read %s: %w", filePath, readErr)
		}
	}
}

// staticPath concatenates the root and the raw remainder, refusing results
// that resolve outside the root.
func (s *server) staticPath(remainder string) (string, bool) {
	filePath := s.config.StaticRoot + remainder
	rel, err := filepath.Rel(s.config.StaticRoot, filepath.Clean(filePath))
	if err != nil || !filepath.IsLocal(rel) {
		return "", false
	}
	return filePath, true
}

func (s *server) serveStats(w io.Writer) error {
	snap := s.stats.Snapshot()
	body := fmt.Sprintf(statsPage, snap.RequestCount, snap.TotalBytesReceived, snap.TotalBytesSent)
	return newResponse(200, contentTypeHTML, []byte(body)).writeTo(w)
}

func (s *server) serveCalc(w io.Writer, query string) error {
	a, b, err := parseCalcQuery(query)
	if err != nil {
		return badRequest().writeTo(w)
	}

	sum, err := addInt64(a, b)
	if err != nil {
		return badRequest().writeTo(w)
	}

	body := fmt.Sprintf(calcPage, a, b, sum)
	return newResponse(200, contentTypeHTML, []byte(body)).writeTo(w)
}

// parseCalcQuery accepts exactly a=<int>&b=<int>.
func parseCalcQuery(query string) (int64, int64, error) {
	aField, bField, ok := strings.Cut(query, "&")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidQuery, query)
	}

	aValue, okA := strings.CutPrefix(aField, "a=")
	bValue, okB := strings.CutPrefix(bField, "b=")
	if !okA || !okB {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidQuery, query)
	}

	a, err := strconv.ParseInt(aValue, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: a: %w", ErrInvalidQuery, err)
	}
	b, err := strconv.ParseInt(bValue, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: b: %w", ErrInvalidQuery, err)
	}
	return a, b, nil
}

func addInt64(a, b int64) (int64, error) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, fmt.Errorf("%w: %d + %d overflows", ErrInvalidQuery, a, b)
	}
	return sum, nil
}
