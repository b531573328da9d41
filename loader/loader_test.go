package loader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "invoiceNumber": "betty25",
  "clientName": "Ada",
  "eventDetails": {"type": "Show", "childName": "Betty", "dateTime": {"start": "2026-01-10T18:00:00Z", "end": "2026-01-10T20:00:00Z"}},
  "lineItems": [{"description": "Show", "quantity": 1, "price": 500}],
  "totalAmount": 500,
  "memo": "",
  "paymentTerms": {"depositDue": "Now", "balanceDue": "Later", "minimumDeposit": 50}
}`

func TestVersionNewer(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewVersion(t0, []byte("a"))

	assert.False(t, a.Newer(a))
	assert.True(t, NewVersion(t0.Add(time.Second), []byte("a")).Newer(a))
	assert.False(t, NewVersion(t0.Add(-time.Second), []byte("b")).Newer(a))
	assert.True(t, NewVersion(t0, []byte("b")).Newer(a))
	assert.True(t, NewVersion(time.Time{}, []byte("b")).Newer(NewVersion(time.Time{}, []byte("a"))))
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"betty25", "john-birthday-2024", "INV_7.2"} {
		assert.True(t, ValidID(id), id)
	}
	for _, id := range []string{"", "../secret", "a/b", ".hidden", "a b", "a%2fb"} {
		assert.False(t, ValidID(id), id)
	}
}

func TestLoader_FileSource(t *testing.T) {
	mod := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	fsys := fstest.MapFS{
		"betty25.json": &fstest.MapFile{Data: []byte(validDoc), ModTime: mod},
		"broken.json":  &fstest.MapFile{Data: []byte(`{"invoiceNumber": `), ModTime: mod},
		"legacy.json":  &fstest.MapFile{Data: []byte(`{"invoice_number": "x", "total_amount": 5}`), ModTime: mod},
		"folder.json":  &fstest.MapFile{Mode: fs.ModeDir | 0o755},
	}
	l := New(NewFileSource(fsys))
	ctx := context.Background()

	t.Run("loads and versions a document", func(t *testing.T) {
		doc, err := l.Load(ctx, "betty25")
		require.NoError(t, err)
		assert.Equal(t, "betty25", doc.Invoice.InvoiceNumber)
		assert.True(t, doc.Version.Modified.Equal(mod))
		assert.NotEmpty(t, doc.Version.Digest)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, err := l.Load(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		_, err := l.Load(ctx, "../betty25")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("directory is not found", func(t *testing.T) {
		_, err := l.Load(ctx, "folder")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("bad json is a decode error", func(t *testing.T) {
		_, err := l.Load(ctx, "broken")
		assert.ErrorIs(t, err, ErrDecode)
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "decode", le.Op)
	})

	t.Run("legacy schema is rejected", func(t *testing.T) {
		_, err := l.Load(ctx, "legacy")
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestHTTPSource(t *testing.T) {
	lastMod := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/invoices/betty25.json":
			w.Header().Set("Last-Modified", lastMod.Format(http.TimeFormat))
			w.Write([]byte(validDoc))
		case "/invoices/boom.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := New(NewHTTPSource(srv.URL+"/", nil, time.Second))
	ctx := context.Background()

	doc, err := l.Load(ctx, "betty25")
	require.NoError(t, err)
	assert.Equal(t, "betty25", doc.Invoice.InvoiceNumber)
	assert.True(t, doc.Version.Modified.Equal(lastMod))

	_, err = l.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Load(ctx, "boom")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPSource_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(NewHTTPSource(url, nil, time.Second)).Load(context.Background(), "betty25")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type fakeS3 struct {
	objects map[string]string
	err     error
	gotKey  string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:         io.NopCloser(bytes.NewReader([]byte(body))),
		LastModified: aws.Time(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}, nil
}

func TestS3Source(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"invoices/betty25.json": validDoc}}
	l := New(newS3Source(client, "bucket", "invoices"))
	ctx := context.Background()

	doc, err := l.Load(ctx, "betty25")
	require.NoError(t, err)
	assert.Equal(t, "invoices/betty25.json", client.gotKey)
	assert.Equal(t, 2026, doc.Version.Modified.Year())

	_, err = l.Load(ctx, "other")
	assert.ErrorIs(t, err, ErrNotFound)

	client.err = errors.New("connection reset")
	_, err = l.Load(ctx, "betty25")
	assert.ErrorIs(t, err, ErrNetwork)
}
