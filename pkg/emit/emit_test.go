package emit

import (
	"fmt"
	"testing"
)

// emitterFunc adapts a function to the Emitter contract for tests.
type emitterFunc struct {
	namespaces []*Namespace
	fn         func(w *Writer)
}

func (e emitterFunc) Namespaces() []*Namespace { return e.namespaces }
func (e emitterFunc) Emit(w *Writer)           { e.fn(w) }

// stubAllocator resolves hints verbatim, uniquified with numeric suffixes,
// and counts invocations so tests can assert one-shot assignment.
type stubAllocator struct {
	calls int
}

func (a *stubAllocator) Assign(namespaces []*Namespace) (*NameAssignment, error) {
	a.calls++
	assigned := make(map[*Name]string)
	for _, ns := range namespaces {
		used := make(map[string]int)
		for _, name := range ns.Names() {
			base := name.Hint()
			used[base]++
			resolved := base
			if used[base] > 1 {
				resolved = fmt.Sprintf("%s%d", base, used[base])
			}
			assigned[name] = resolved
		}
	}
	return NewNameAssignment(assigned), nil
}

func renderSource(t *testing.T, fn func(w *Writer)) string {
	t.Helper()
	return renderOutput(t, fn).Source
}

func renderOutput(t *testing.T, fn func(w *Writer)) Output {
	t.Helper()
	output, err := New().Render(emitterFunc{fn: fn})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return output
}

func wantContractError(t *testing.T) {
	t.Helper()
	recovered := recover()
	if recovered == nil {
		t.Fatalf("expected contract violation panic")
	}
	if _, ok := recovered.(*ContractError); !ok {
		t.Fatalf("expected *ContractError, got %T: %v", recovered, recovered)
	}
}
