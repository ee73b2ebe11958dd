package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Fetcher retrieves raw manifest documents. The default implementation
// reads files, fs.FS entries and HTTP URLs.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) (Document, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, src Source) (Document, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, src Source) (Document, error) {
	return f(ctx, src)
}

// Document is a raw manifest payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw and pairs it with src.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src.IsZero() {
		return Document{}, errors.New("manifest: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("manifest: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns where the document came from.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Hash returns the hex SHA-256 of the payload.
func (d Document) Hash() string {
	sum := sha256.Sum256(d.raw)
	return hex.EncodeToString(sum[:])
}
