// Package profile holds named extraction presets: the pattern that finds
// completions in a given model's log, plus the sentinel and prompt prefix to
// use with it.
package profile

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/finetune-cli/internal/dataset"
	"github.com/sells-group/finetune-cli/internal/extract"
)

// DefaultName is the profile used when none is selected.
const DefaultName = "qwen2.5-coder"

// Profile describes how to pull completions out of one kind of log.
type Profile struct {
	Pattern      string `yaml:"pattern"`
	Sentinel     string `yaml:"sentinel,omitempty"`
	PromptPrefix string `yaml:"prompt_prefix,omitempty"`
}

// Set is a collection of profiles keyed by name.
type Set struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Builtin returns the profiles compiled into the binary.
func Builtin() *Set {
	return &Set{Profiles: map[string]Profile{
		DefaultName: {
			Pattern:      `QWEN2\.5-CODER(.*?)(?=##################################################)`,
			Sentinel:     extract.DefaultSentinel,
			PromptPrefix: dataset.DefaultPromptPrefix,
		},
	}}
}

// Load reads profiles from a YAML file and layers them over the builtins.
// Profiles missing a sentinel or prefix get the defaults.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "profile: read %s", path)
	}

	var file Set
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "profile: parse file")
	}

	set := Builtin()
	for name, p := range file.Profiles {
		if p.Pattern == "" {
			return nil, eris.Errorf("profile: %q has no pattern", name)
		}
		if p.Sentinel == "" {
			p.Sentinel = extract.DefaultSentinel
		}
		if p.PromptPrefix == "" {
			p.PromptPrefix = dataset.DefaultPromptPrefix
		}
		set.Profiles[name] = p
	}
	return set, nil
}

// Get returns the named profile.
func (s *Set) Get(name string) (Profile, error) {
	p, ok := s.Profiles[name]
	if !ok {
		return Profile{}, eris.Errorf("profile: unknown profile %q", name)
	}
	return p, nil
}

// Names returns the profile names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
