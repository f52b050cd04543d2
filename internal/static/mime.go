package static

import "strings"

const DefaultContentType = "application/octet-stream"

// suffixes are matched case sensitively, in order
var contentTypes = []struct {
	suffix      string
	contentType string
}{
	{".htm", "text/html"},
	{".html", "text/html"},
	{".gif", "image/gif"},
	{".jpeg", "image/jpeg"},
	{".jpg", "image/jpeg"},
}

func ContentType(name string) string {
	for _, ct := range contentTypes {
		if strings.HasSuffix(name, ct.suffix) {
			return ct.contentType
		}
	}

	return DefaultContentType
}
