package request

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/junwei890/http-1.0/internal/headers"
)

const (
	DefaultVersion = "HTTP/1.0"
	// longest request or header line accepted, in bytes
	MaxLineLength = 8 << 10
)

var ErrMalformedRequest = errors.New("malformed request")

var errLineTooLong = errors.New("line too long")

type RequestLine struct {
	HttpVersion   string
	RequestTarget string
	Method        string
}

type Request struct {
	RequestLine RequestLine
	// headers are drained up to the blank line, kept only for logging
	Headers *headers.Headers
}

// readLine returns one line with its CRLF or LF terminator removed
func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		chunk, err := br.ReadSlice('\n')
		if sb.Len()+len(chunk) > MaxLineLength {
			return "", errLineTooLong
		}
		sb.Write(chunk)

		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			// a final line without terminator still counts
			if err == io.EOF && sb.Len() > 0 {
				break
			}
			return "", err
		}
		break
	}

	line := strings.TrimSuffix(sb.String(), "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func parseRequestLine(line string) (*RequestLine, error) {
	// runs of whitespace separate the parts
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: request line requires at least 2 parts, only have %d", ErrMalformedRequest, len(parts))
	}

	rl := &RequestLine{
		Method:        parts[0],
		RequestTarget: parts[1],
		HttpVersion:   DefaultVersion,
	}
	if len(parts) > 2 {
		rl.HttpVersion = parts[2]
	}

	return rl, nil
}

// drainHeaders consumes every line up to and including the first empty one,
// running out of input or hitting a bad line just ends the drain
func drainHeaders(br *bufio.Reader, h *headers.Headers) {
	for {
		line, err := readLine(br)
		if err != nil || line == "" {
			return
		}

		// unparseable header lines are discarded
		_ = h.ParseLine(line)
	}
}

func RequestParser(reader io.Reader) (*Request, error) {
	br, ok := reader.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(reader)
	}

	line, err := readLine(br)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: connection closed before request line", ErrMalformedRequest)
		}
		if err == errLineTooLong {
			return nil, fmt.Errorf("%w: request line exceeds %d bytes", ErrMalformedRequest, MaxLineLength)
		}
		return nil, fmt.Errorf("couldn't read request line: %w", err)
	}

	rl, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	req := &Request{
		RequestLine: *rl,
		Headers:     headers.NewHeaders(),
	}
	drainHeaders(br, req.Headers)

	return req, nil
}
