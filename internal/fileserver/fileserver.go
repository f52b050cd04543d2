// Package fileserver answers GET requests with files from a document root.
package fileserver

import (
	"errors"
	"fmt"

	"github.com/junwei890/http-1.0/internal/request"
	"github.com/junwei890/http-1.0/internal/response"
	"github.com/junwei890/http-1.0/internal/server"
	"github.com/junwei890/http-1.0/internal/static"
)

// Resolver is satisfied by *static.Resolver.
type Resolver interface {
	Resolve(target string) (*static.File, error)
}

func Handler(resolver Resolver) server.Handler {
	return func(w *response.Writer, r *request.Request) error {
		if r.RequestLine.Method != "GET" {
			return w.WriteError(response.StatusBadRequest, "This server only supports the GET method.")
		}

		target := r.RequestLine.RequestTarget
		file, err := resolver.Resolve(target)
		switch {
		case errors.Is(err, static.ErrNotFound):
			if target == "/" {
				target = static.DefaultDocument
			}
			return w.WriteError(response.StatusNotFound, fmt.Sprintf("File %s not found.", target))
		case err != nil:
			// disk failures close the connection without a response
			return err
		}

		return w.WriteFile(file.ContentType, file.Bytes)
	}
}
