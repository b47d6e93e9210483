package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"staffdir/internal/blob"
	"staffdir/pkg/domain"
)

// DefaultBlobKey is where the blob source looks for the roster document.
const DefaultBlobKey = "seed/employees.yaml"

// DecodeDocument reads a YAML (or JSON) roster document.
func DecodeDocument(r io.Reader) ([]domain.Employee, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	out := make([]domain.Employee, 0, len(doc.Employees))
	for _, rec := range doc.Employees {
		out = append(out, rec.Employee())
	}
	return out, nil
}

// EncodeDocument writes records as a YAML roster document.
func EncodeDocument(w io.Writer, records []domain.Employee) error {
	doc := Document{Employees: make([]Record, 0, len(records))}
	for _, e := range records {
		doc.Employees = append(doc.Employees, RecordOf(e))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return enc.Close()
}

// File loads a roster document from disk.
type File struct {
	path string
}

// NewFile returns a source reading path.
func NewFile(path string) *File { return &File{path: path} }

// Name implements Source.
func (f *File) Name() string { return "file:" + f.path }

// Load implements Source.
func (f *File) Load(ctx context.Context) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer func() { _ = fh.Close() }()
	return DecodeDocument(fh)
}

// Blob loads a roster document from a blob store.
type Blob struct {
	store blob.Store
	key   string
}

// NewBlob returns a source reading key from store. An empty key selects DefaultBlobKey.
func NewBlob(store blob.Store, key string) *Blob {
	if key == "" {
		key = DefaultBlobKey
	}
	return &Blob{store: store, key: key}
}

// Name implements Source.
func (b *Blob) Name() string { return fmt.Sprintf("blob:%s/%s", b.store.Driver(), b.key) }

// Load implements Source.
func (b *Blob) Load(ctx context.Context) ([]domain.Employee, error) {
	_, rc, err := b.store.Get(ctx, b.key)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer func() { _ = rc.Close() }()
	return DecodeDocument(rc)
}

// Publish writes records as a roster document to key in store.
func Publish(ctx context.Context, store blob.Store, key string, records []domain.Employee) (blob.Info, error) {
	if key == "" {
		key = DefaultBlobKey
	}
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, records); err != nil {
		return blob.Info{}, err
	}
	return store.Put(ctx, key, bytes.NewReader(buf.Bytes()), blob.PutOptions{ContentType: "application/yaml"})
}
