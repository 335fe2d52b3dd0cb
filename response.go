package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	contentTypeHTML   = "text/html"
	contentTypeBinary = "application/octet-stream"
)

var (
	notFoundBody         = []byte("<h1>404 Not Found</h1>")
	badRequestBody       = []byte("<h1>400 Bad Request</h1>")
	methodNotAllowedBody = []byte("<h1>405 Method Not Allowed</h1>")
)

type header struct {
	name  string
	value string
}

// response is a complete HTTP response. Headers keep insertion order.
type response struct {
	status  int
	headers []header
	body    []byte
}

func newResponse(status int, contentType string, body []byte) *response {
	resp := &response{status: status, body: body}
	resp.setHeader("Content-Type", contentType)
	resp.setHeader("Content-Length", strconv.Itoa(len(body)))
	resp.setHeader("Connection", "close")
	return resp
}

func (resp *response) setHeader(name, value string) {
	resp.headers = append(resp.headers, header{name: name, value: value})
}

// head renders the status line and headers, terminated by the blank line.
func (resp *response) head() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", resp.status, statusText(resp.status))
	for _, h := range resp.headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h.name, h.value)
	}
	b.WriteString("\r\n")
	return []byte(b.String())
}

// bytes serializes the whole response so small messages go out in one write.
func (resp *response) bytes() []byte {
	return append(resp.head(), resp.body...)
}

func (resp *response) writeTo(w io.Writer) error {
	_, err := w.Write(resp.bytes())
	return err
}

// statusText covers only the codes this server sends.
func statusText(code int) string {
	switch code {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	default:
		return ""
	}
}

func notFound() *response {
	return newResponse(404, contentTypeHTML, notFoundBody)
}

func badRequest() *response {
	return newResponse(400, contentTypeHTML, badRequestBody)
}

func methodNotAllowed() *response {
	resp := newResponse(405, contentTypeHTML, methodNotAllowedBody)
	resp.setHeader("Allow", "GET")
	return resp
}

// sentCounter reports every successful write to the registry as it happens.
type sentCounter struct {
	w     io.Writer
	stats *StatsRegistry
}

func (c *sentCounter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.stats.AddBytesSent(uint64(n))
	}
	return n, err
}
