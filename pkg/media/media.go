// Package media persists complaint attachments either on local disk or on a
// hosted media service and returns the reference recorded on the complaint.
package media

import (
	"context"
	"io"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// File is an uploaded attachment as read from a multipart request.
type File struct {
	Filename string
	Kind     Kind
	Content  io.Reader
}

// Store saves an attachment and returns its path or URL. Remove deletes a
// reference previously returned by Save.
type Store interface {
	Save(ctx context.Context, file File) (string, error)
	Remove(ctx context.Context, kind Kind, ref string) error
	Name() string
}
