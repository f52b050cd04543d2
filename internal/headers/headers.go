package headers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

var regex = regexp.MustCompile(`[^a-z0-9!#$%&'*+\-.^_` + "`" + `|~]`)

type Field struct {
	Name  string
	Value string
}

// Headers keeps fields in insertion order, lookups are case insensitive
type Headers struct {
	fields []Field
}

func NewHeaders() *Headers {
	return &Headers{}
}

func (h *Headers) index(name string) int {
	for i, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}

	return -1
}

// Set replaces the value of an existing field or appends a new one
func (h *Headers) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.fields[i].Value = value
		return
	}

	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// duplicate field names are valid, values are joined
func (h *Headers) Add(name, value string) {
	if i := h.index(name); i >= 0 {
		h.fields[i].Value = fmt.Sprintf("%s, %s", h.fields[i].Value, value)
		return
	}

	h.fields = append(h.fields, Field{Name: name, Value: value})
}

func (h *Headers) Get(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h.fields[i].Value, true
	}

	return "", false
}

func (h *Headers) Len() int {
	return len(h.fields)
}

func (h *Headers) Fields() []Field {
	out := make([]Field, len(h.fields))
	copy(out, h.fields)

	return out
}

func (h *Headers) MarshalZerologObject(e *zerolog.Event) {
	for _, f := range h.fields {
		e.Str(f.Name, f.Value)
	}
}

// ParseLine parses a single header line without its line terminator
func (h *Headers) ParseLine(line string) error {
	// no whitespace between field name, colon and field value is valid
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("field name or field value missing: %s", line)
	}
	if strings.HasSuffix(parts[0], " ") || strings.HasSuffix(parts[0], "\t") {
		return fmt.Errorf("whitespace between field name and colon detected: %s", line)
	}

	key := strings.ToLower(strings.TrimSpace(parts[0]))
	if key == "" || regex.MatchString(key) {
		return fmt.Errorf("invalid character in field name detected: %q", key)
	}

	h.Add(key, strings.TrimSpace(parts[1]))

	return nil
}
