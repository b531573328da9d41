package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/satheeshds/invoice-viewer/models"
)

// Document is a decoded, validated invoice and the version it was read at.
type Document struct {
	Invoice *models.Invoice
	Version Version
}

// Loader turns raw resources from a Source into documents.
type Loader struct {
	source Source
}

// New returns a loader reading from source.
func New(source Source) *Loader {
	return &Loader{source: source}
}

// Load fetches and decodes invoice id. Errors wrap ErrNotFound, ErrDecode
// or ErrNetwork.
func (l *Loader) Load(ctx context.Context, id string) (*Document, error) {
	if !ValidID(id) {
		return nil, newLoadError("fetch", id, ErrNotFound, errors.New("malformed invoice id"))
	}
	res, err := l.source.Fetch(ctx, id)
	if err != nil {
		return nil, classify(id, err)
	}
	inv, err := Decode(id, res.Body)
	if err != nil {
		return nil, err
	}
	return &Document{Invoice: inv, Version: res.Version}, nil
}

// Raw fetches the undecoded resource for id.
func (l *Loader) Raw(ctx context.Context, id string) (*Resource, error) {
	if !ValidID(id) {
		return nil, newLoadError("fetch", id, ErrNotFound, errors.New("malformed invoice id"))
	}
	res, err := l.source.Fetch(ctx, id)
	if err != nil {
		return nil, classify(id, err)
	}
	return res, nil
}

// Decode parses and validates an invoice document.
func Decode(id string, body []byte) (*models.Invoice, error) {
	var inv models.Invoice
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&inv); err != nil {
		return nil, newLoadError("decode", id, ErrDecode, err)
	}
	if msg := inv.Validate(); msg != "" {
		return nil, newLoadError("decode", id, ErrDecode, errors.New(msg))
	}
	return &inv, nil
}

// classify makes sure every source error carries one of the sentinels.
func classify(id string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return newLoadError("fetch", id, ErrNetwork, err)
}
