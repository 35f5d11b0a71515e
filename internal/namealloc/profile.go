package namealloc

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile carries per-target naming policy: reserved words the allocator
// must avoid and explicit renames applied after sanitizing.
type Profile struct {
	Reserved []string          `yaml:"reserved"`
	Renames  map[string]string `yaml:"renames"`
}

// LoadProfile reads a YAML naming profile from disk.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("namealloc: read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML naming profile.
func ParseProfile(data []byte) (Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("namealloc: parse profile: %w", err)
	}
	return profile, nil
}

func (p Profile) merge(other Profile) Profile {
	merged := Profile{
		Reserved: append(append([]string(nil), p.Reserved...), other.Reserved...),
	}
	if len(p.Renames)+len(other.Renames) > 0 {
		merged.Renames = make(map[string]string, len(p.Renames)+len(other.Renames))
		for from, to := range p.Renames {
			merged.Renames[from] = to
		}
		for from, to := range other.Renames {
			merged.Renames[from] = to
		}
	}
	return merged
}

func (p Profile) rename(identifier string) string {
	if to, ok := p.Renames[identifier]; ok && strings.TrimSpace(to) != "" {
		return strings.TrimSpace(to)
	}
	return identifier
}

func (p Profile) reservedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Reserved))
	for _, word := range p.Reserved {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}
