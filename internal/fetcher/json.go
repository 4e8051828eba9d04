package fetcher

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// maxLineSize caps a single JSON Lines record.
const maxLineSize = 64 * 1024 * 1024

// ReadJSONL decodes one JSON value per line, in file order. Any line that
// fails to decode aborts the read; the error names the 1-based line number.
// A trailing newline at end of input does not count as a line.
func ReadJSONL[T any](r io.Reader) ([]T, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var out []T
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSuffix(scanner.Bytes(), []byte("\r"))

		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, eris.Wrapf(err, "jsonl: decode line %d", lineNo)
		}
		out = append(out, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "jsonl: scan after line %d", lineNo)
	}
	return out, nil
}

// ReadJSONArray decodes a top-level JSON array element by element.
// Expects input in the form [{...},{...}]. Empty input yields no elements.
func ReadJSONArray[T any](r io.Reader) ([]T, error) {
	decoder := json.NewDecoder(r)

	// Expect opening bracket
	tok, err := decoder.Token()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "json: read opening token")
	}

	delim, ok := tok.(json.Delim)
	if !ok || delim != '[' {
		return nil, eris.Errorf("json: expected '[', got %v", tok)
	}

	var out []T
	for decoder.More() {
		var item T
		if err := decoder.Decode(&item); err != nil {
			return nil, eris.Wrapf(err, "json: decode element %d", len(out))
		}
		out = append(out, item)
	}

	// Consume closing bracket
	if _, err := decoder.Token(); err != nil && err != io.EOF {
		return nil, eris.Wrap(err, "json: read closing token")
	}
	return out, nil
}
