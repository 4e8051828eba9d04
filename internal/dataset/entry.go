package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/finetune-cli/internal/fetcher"
)

// DefaultOutputFile is where Generate writes when no path is given.
const DefaultOutputFile = "finetune_data.json"

// Entry is one question/answer pair in the fine-tuning dataset.
type Entry struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Pair zips prompts and completions by position. The result is as long as
// the shorter input; extra items on the longer side are discarded.
func Pair(prompts, completions []string) []Entry {
	n := min(len(prompts), len(completions))
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{Q: prompts[i], A: completions[i]})
	}
	return entries
}

// Encode renders entries as a JSON array with four-space indentation.
// HTML characters are written literally and no trailing newline is added.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return nil, eris.Wrap(err, "dataset: encode entries")
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON replaces the file at path with the encoded entries. The data goes
// to a temp file in the same directory first and is renamed into place, so a
// failed run never leaves a half-written dataset behind.
func WriteJSON(path string, entries []Entry) error {
	data, err := Encode(entries)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".finetune-*.json")
	if err != nil {
		return eris.Wrapf(err, "dataset: create temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return eris.Wrapf(err, "dataset: write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "dataset: close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return eris.Wrapf(err, "dataset: rename to %s", path)
	}
	return nil
}

// ReadJSON loads a dataset previously written by WriteJSON.
func ReadJSON(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	entries, err := fetcher.ReadJSONArray[Entry](f)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}
	return entries, nil
}
