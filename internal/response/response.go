package response

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/junwei890/http-1.0/internal/headers"
)

const Version = "HTTP/1.0"

type WriterState string

const (
	writingStatusLine WriterState = "status line"
	writingHeaders    WriterState = "headers"
	writingBody       WriterState = "body"
)

type Writer struct {
	Response    io.Writer
	writerState WriterState
}

type StatusCode int

// only the codes the file server sends
const (
	StatusOK         StatusCode = 200
	StatusBadRequest StatusCode = 400
	StatusNotFound   StatusCode = 404
)

var reasonPhrases = map[StatusCode]string{
	StatusOK:         "OK",
	StatusBadRequest: "Bad Request",
	StatusNotFound:   "Not Found",
}

// only angle brackets are escaped, request targets otherwise appear verbatim
var markupEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Reason is empty for codes without a known reason phrase
func (c StatusCode) Reason() string {
	return reasonPhrases[c]
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Response:    w,
		writerState: writingStatusLine,
	}
}

func (w *Writer) WriteStatusLine(statusCode StatusCode) error {
	if w.writerState != writingStatusLine {
		return fmt.Errorf("writing status line while in %s state", w.writerState)
	}
	defer func() { w.writerState = writingHeaders }()

	// there must be a space between status code and reason phrase even if reason phrase is absent
	if _, err := fmt.Fprintf(w.Response, "%s %d %s\r\n", Version, statusCode, statusCode.Reason()); err != nil {
		return err
	}

	return nil
}

func FileHeaders(contentType string, length int) *headers.Headers {
	h := headers.NewHeaders()

	h.Set("Content-Type", contentType)
	h.Set("Connection", "close")
	h.Set("Content-Length", strconv.Itoa(length))

	return h
}

// error responses carry no Content-Length, the body ends when the connection closes
func ErrorHeaders() *headers.Headers {
	h := headers.NewHeaders()

	h.Set("Content-Type", "text/html")
	h.Set("Connection", "close")

	return h
}

func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.writerState != writingHeaders {
		return fmt.Errorf("writing headers while in %s state", w.writerState)
	}
	defer func() { w.writerState = writingBody }()

	for _, field := range h.Fields() {
		if _, err := fmt.Fprintf(w.Response, "%s: %s\r\n", field.Name, field.Value); err != nil {
			return err
		}
	}

	// extra /r/n at the end of headers
	if _, err := w.Response.Write([]byte("\r\n")); err != nil {
		return err
	}

	return nil
}

func (w *Writer) WriteBody(body []byte) (int, error) {
	if w.writerState != writingBody {
		return 0, fmt.Errorf("writing body while in %s state", w.writerState)
	}

	n, err := w.Response.Write(body)
	if err != nil {
		return n, err
	}

	return n, nil
}

// WriteFile sends a 200 response carrying body verbatim
func (w *Writer) WriteFile(contentType string, body []byte) error {
	if err := w.WriteStatusLine(StatusOK); err != nil {
		return err
	}
	if err := w.WriteHeaders(FileHeaders(contentType, len(body))); err != nil {
		return err
	}
	_, err := w.WriteBody(body)

	return err
}

// WriteError sends statusCode with a small HTML page describing message
func (w *Writer) WriteError(statusCode StatusCode, message string) error {
	if err := w.WriteStatusLine(statusCode); err != nil {
		return err
	}
	if err := w.WriteHeaders(ErrorHeaders()); err != nil {
		return err
	}
	_, err := w.WriteBody(ErrorBody(statusCode, message))

	return err
}

func ErrorBody(statusCode StatusCode, message string) []byte {
	status := fmt.Sprintf("%d %s", statusCode, statusCode.Reason())

	return fmt.Appendf(nil,
		"<HTML><HEAD><TITLE>%s</TITLE></HEAD><BODY><H1>%s</H1><P>%s</P></BODY></HTML>",
		status, status, markupEscaper.Replace(message),
	)
}
