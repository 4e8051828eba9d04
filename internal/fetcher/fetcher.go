// Package fetcher reads the builder's local inputs: whole text files in a
// declared charset, JSON Lines records, and JSON arrays.
package fetcher

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// ReadText reads the whole file at path and decodes it to UTF-8.
// An empty label or "utf-8" strips a leading byte order mark; any other
// label is resolved through the WHATWG encoding index.
func ReadText(path, encoding string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close()

	r, err := DecodeReader(f, encoding)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: read %s", path)
	}
	return string(data), nil
}

// DecodeReader wraps r with a decoder for the given charset label.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder().Reader(r), nil
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: unsupported charset %q", encoding)
	}
	return enc.NewDecoder().Reader(r), nil
}
