package headers

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	// test: valid single header
	h := NewHeaders()
	require.NoError(t, h.ParseLine("Host: localhost:6789"))
	value, ok := h.Get("host")
	require.True(t, ok)
	assert.Equal(t, "localhost:6789", value)

	// test: extra whitespace around value
	h = NewHeaders()
	require.NoError(t, h.ParseLine("          Accept:   */*       "))
	value, ok = h.Get("Accept")
	require.True(t, ok)
	assert.Equal(t, "*/*", value)

	// test: duplicate field names are joined
	h = NewHeaders()
	require.NoError(t, h.ParseLine("Set-Person: lane-loves-go"))
	require.NoError(t, h.ParseLine("Set-Person: prime-loves-zig"))
	value, _ = h.Get("set-person")
	assert.Equal(t, "lane-loves-go, prime-loves-zig", value)
	assert.Equal(t, 1, h.Len())

	// test: whitespace between field name and colon
	h = NewHeaders()
	require.Error(t, h.ParseLine("Host : localhost:6789"))

	// test: invalid character in field name
	require.Error(t, h.ParseLine("H©st: localhost:6789"))

	// test: missing colon
	require.Error(t, h.ParseLine("not a header"))
	assert.Equal(t, 0, h.Len())
}

func TestSetKeepsOrder(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "text/plain")
	h.Set("Connection", "close")
	h.Set("Content-Length", "2")
	h.Set("content-type", "text/html")

	assert.Equal(t, []Field{
		{Name: "Content-Type", Value: "text/html"},
		{Name: "Connection", Value: "close"},
		{Name: "Content-Length", Value: "2"},
	}, h.Fields())

	_, ok := h.Get("X-Missing")
	assert.False(t, ok)
}

func TestMarshalZerologObject(t *testing.T) {
	h := NewHeaders()
	require.NoError(t, h.ParseLine("Host: localhost:6789"))
	require.NoError(t, h.ParseLine("Accept: */*"))

	var buf bytes.Buffer
	zerolog.New(&buf).Info().Object("headers", h).Msg("")

	assert.JSONEq(t, `{"level":"info","headers":{"host":"localhost:6789","accept":"*/*"}}`, buf.String())
}
