package response

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenPipe struct{}

func (brokenPipe) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteFile(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteFile("text/html", []byte("hi")))
	assert.Equal(t, "HTTP/1.0 200 OK\r\nContent-Type: text/html\r\nConnection: close\r\nContent-Length: 2\r\n\r\nhi", buf.String())
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteError(StatusNotFound, "File /missing.png not found."))
	assert.Equal(t,
		"HTTP/1.0 404 Not Found\r\nContent-Type: text/html\r\nConnection: close\r\n\r\n"+
			"<HTML><HEAD><TITLE>404 Not Found</TITLE></HEAD><BODY><H1>404 Not Found</H1><P>File /missing.png not found.</P></BODY></HTML>",
		buf.String(),
	)

	// test: markup in the message is escaped
	body := string(ErrorBody(StatusBadRequest, "<script>"))
	assert.Contains(t, body, "<P>&lt;script&gt;</P>")
	assert.Contains(t, body, "<TITLE>400 Bad Request</TITLE>")

	// test: other characters pass through untouched
	body = string(ErrorBody(StatusNotFound, `File /a&b's "c".png not found.`))
	assert.Contains(t, body, `<P>File /a&b's "c".png not found.</P>`)
}

func TestWriterState(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	// test: out of order writes are rejected
	_, err := w.WriteBody([]byte("early"))
	require.Error(t, err)
	require.Error(t, w.WriteHeaders(ErrorHeaders()))

	require.NoError(t, w.WriteStatusLine(StatusCode(299)))
	assert.Equal(t, "HTTP/1.0 299 \r\n", buf.String())
	require.Error(t, w.WriteStatusLine(StatusOK))
}

func TestWriteFailurePropagates(t *testing.T) {
	w := NewWriter(brokenPipe{})
	require.Error(t, w.WriteFile("text/html", []byte("hi")))

	w = NewWriter(brokenPipe{})
	require.Error(t, w.WriteError(StatusNotFound, "gone"))
}
