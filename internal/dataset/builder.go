// Package dataset builds question/answer fine-tuning datasets from an
// inference log and the prompts that produced it.
package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/finetune-cli/internal/extract"
	"github.com/sells-group/finetune-cli/internal/fetcher"
)

// DefaultPromptPrefix is prepended to every prompt record.
const DefaultPromptPrefix = "Following is a function signature for a python program. " +
	"Please complete the function according to the signature and docstring - \n"

// ErrMalformedPrompt is returned when a prompt line is not a JSON object with
// a string "prompt" field.
var ErrMalformedPrompt = eris.New("malformed prompt record")

// PromptRecord is one line of the prompt file. Keys are matched exactly, so
// "Prompt" or "PROMPT" do not stand in for "prompt".
type PromptRecord map[string]json.RawMessage

// Prompt returns the "prompt" field. A missing or null field, or one that is
// not a string, is an error.
func (r PromptRecord) Prompt() (string, error) {
	raw, ok := r["prompt"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", eris.New(`missing "prompt" field`)
	}
	var prompt string
	if err := json.Unmarshal(raw, &prompt); err != nil {
		return "", eris.Wrap(err, `decode "prompt" field`)
	}
	return prompt, nil
}

// Report summarizes one Generate run.
type Report struct {
	Segments            int
	Dropped             int
	Completions         int
	Prompts             int
	Entries             int
	UnpairedPrompts     int
	UnpairedCompletions int
	OutputPath          string
	DryRun              bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithSentinel sets the marker at which each segment is truncated.
func WithSentinel(s string) Option {
	return func(b *Builder) { b.sentinel = s }
}

// WithPromptPrefix sets the header prepended to each prompt.
func WithPromptPrefix(p string) Option {
	return func(b *Builder) { b.prefix = p }
}

// WithEncoding sets the charset label used to decode both input files.
func WithEncoding(label string) Option {
	return func(b *Builder) { b.encoding = label }
}

// WithMatchTimeout bounds a single pattern match. Zero means no limit.
func WithMatchTimeout(d time.Duration) Option {
	return func(b *Builder) { b.matchTimeout = d }
}

// WithLogger sets the logger. Defaults to zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// WithDryRun makes Generate report without writing the output file.
func WithDryRun(dry bool) Option {
	return func(b *Builder) { b.dryRun = dry }
}

// Builder holds a fully loaded inference log and its prompts.
type Builder struct {
	logText string
	prompts []string

	sentinel     string
	prefix       string
	encoding     string
	matchTimeout time.Duration
	dryRun       bool
	log          *zap.Logger
}

// NewBuilder reads the inference log and the prompt file into memory.
// It fails if either file cannot be read or any prompt line is malformed.
func NewBuilder(logPath, promptPath string, opts ...Option) (*Builder, error) {
	b := &Builder{
		sentinel: extract.DefaultSentinel,
		prefix:   DefaultPromptPrefix,
		encoding: "utf-8",
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = zap.L()
	}

	text, err := fetcher.ReadText(logPath, b.encoding)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: load log")
	}
	b.logText = text

	prompts, err := loadUserPrompts(promptPath, b.encoding, b.prefix)
	if err != nil {
		return nil, err
	}
	b.prompts = prompts

	b.log.Debug("dataset: inputs loaded",
		zap.String("log", logPath),
		zap.Int("log_bytes", len(text)),
		zap.String("prompts", promptPath),
		zap.Int("prompt_count", len(prompts)),
	)
	return b, nil
}

// Prompts returns the prefixed user prompts in file order.
func (b *Builder) Prompts() []string {
	return b.prompts
}

// completions returns the cleaned completions, the number of raw segments
// matched and how many of those were dropped.
func (b *Builder) completions(pattern string) ([]string, int, int, error) {
	p, err := extract.Compile(pattern, b.matchTimeout)
	if err != nil {
		return nil, 0, 0, err
	}
	segments, err := p.Segments(b.logText)
	if err != nil {
		return nil, 0, 0, err
	}
	completions, dropped := extract.Completions(segments, b.sentinel)
	return completions, len(segments), dropped, nil
}

// Generate extracts completions with pattern, pairs them with the prompts by
// position and writes the result to outputPath as a JSON array. An empty
// outputPath means DefaultOutputFile. A pattern with no matches writes [].
func (b *Builder) Generate(pattern, outputPath string) (*Report, error) {
	if outputPath == "" {
		outputPath = DefaultOutputFile
	}

	completions, segments, dropped, err := b.completions(pattern)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: extract completions")
	}

	entries := Pair(b.prompts, completions)
	report := &Report{
		Segments:            segments,
		Dropped:             dropped,
		Completions:         len(completions),
		Prompts:             len(b.prompts),
		Entries:             len(entries),
		UnpairedPrompts:     len(b.prompts) - len(entries),
		UnpairedCompletions: len(completions) - len(entries),
		OutputPath:          outputPath,
		DryRun:              b.dryRun,
	}

	b.log.Info("saving entries",
		zap.Int("entries", len(entries)),
		zap.String("path", outputPath),
		zap.Bool("dry_run", b.dryRun),
	)
	if b.dryRun {
		return report, nil
	}

	if err := WriteJSON(outputPath, entries); err != nil {
		return nil, eris.Wrap(err, "dataset: save")
	}
	return report, nil
}

func loadUserPrompts(path, encoding, prefix string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open prompts %s", path)
	}
	defer f.Close()

	r, err := fetcher.DecodeReader(f, encoding)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: load prompts")
	}
	records, err := fetcher.ReadJSONL[PromptRecord](r)
	if err != nil {
		return nil, eris.Wrapf(ErrMalformedPrompt, "%s: %v", path, err)
	}

	prompts := make([]string, 0, len(records))
	for i, rec := range records {
		prompt, err := rec.Prompt()
		if err != nil {
			return nil, eris.Wrapf(ErrMalformedPrompt, "%s: line %d: %v", path, i+1, err)
		}
		prompts = append(prompts, prefix+prompt)
	}
	return prompts, nil
}
