package namealloc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-srcgen/pkg/emit"
)

// Option configures the allocator before construction.
type Option func(*Allocator)

// WithProfile applies a naming profile (reserved words, explicit renames).
func WithProfile(profile Profile) Option {
	return func(a *Allocator) {
		a.profile = a.profile.merge(profile)
	}
}

// WithReservedWords marks identifiers the allocator must never hand out,
// typically the target language's keywords.
func WithReservedWords(words ...string) Option {
	return func(a *Allocator) {
		a.profile.Reserved = append(a.profile.Reserved, words...)
	}
}

// Allocator is the default name-assignment collaborator. It sanitizes each
// declared hint into a legal identifier, applies profile renames, and
// uniquifies with numeric suffixes so every namespace ends up with
// pairwise-distinct strings.
type Allocator struct {
	profile Profile
}

var _ emit.Allocator = (*Allocator)(nil)

// New constructs an Allocator applying any provided options.
func New(options ...Option) *Allocator {
	a := &Allocator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Assign resolves every name in the given namespaces exactly once.
func (a *Allocator) Assign(namespaces []*emit.Namespace) (*emit.NameAssignment, error) {
	reserved := a.profile.reservedSet()
	assigned := make(map[*emit.Name]string)

	for _, ns := range namespaces {
		if ns == nil {
			continue
		}
		taken := make(map[string]struct{})
		for _, name := range ns.Names() {
			base := a.profile.rename(sanitize(name.Hint()))
			if base == "" {
				return nil, fmt.Errorf("namealloc: namespace %q: empty hint", ns.Label())
			}
			candidate := base
			for i := 2; isBlocked(candidate, taken, reserved); i++ {
				candidate = fmt.Sprintf("%s%d", base, i)
			}
			taken[candidate] = struct{}{}
			assigned[name] = candidate
		}
	}

	return emit.NewNameAssignment(assigned), nil
}

func isBlocked(candidate string, taken map[string]struct{}, reserved map[string]struct{}) bool {
	if _, ok := taken[candidate]; ok {
		return true
	}
	_, ok := reserved[strings.ToLower(candidate)]
	return ok
}

// sanitize converts an arbitrary hint into a plausible identifier: runs of
// non-identifier characters collapse into single underscores, and a leading
// digit gets an underscore prefix.
func sanitize(hint string) string {
	var b strings.Builder
	b.Grow(len(hint))
	lastUnderscore := false
	for _, r := range hint {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "x"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}
