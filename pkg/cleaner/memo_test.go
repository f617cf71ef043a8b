package cleaner

import (
	"sync"
	"sync/atomic"
	"testing"
)

// countingCleaner counts how often the wrapped transform actually runs.
type countingCleaner struct {
	calls atomic.Int64
}

func (c *countingCleaner) Clean(text string) (string, error) {
	c.calls.Add(1)
	return Normalize(text), nil
}

func (c *countingCleaner) Name() string {
	return "counting"
}

func TestMemo_CachesResults(t *testing.T) {
	inner := &countingCleaner{}
	m := NewMemo(inner, 10)

	for i := 0; i < 5; i++ {
		got, err := m.Clean("  a   b ")
		if err != nil {
			t.Fatalf("Clean() error = %v", err)
		}
		if got != "a b" {
			t.Errorf("Clean() = %q, want %q", got, "a b")
		}
	}

	if n := inner.calls.Load(); n != 1 {
		t.Errorf("inner called %d times, want 1", n)
	}
	if rate := m.HitRate(); rate != 0.8 {
		t.Errorf("HitRate() = %v, want 0.8", rate)
	}
}

func TestMemo_Evicts(t *testing.T) {
	m := NewMemo(NewNoop(), 2)

	for _, s := range []string{"a", "b", "c"} {
		if _, err := m.Clean(s); err != nil {
			t.Fatalf("Clean() error = %v", err)
		}
	}

	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMemo_DoesNotCacheErrors(t *testing.T) {
	m := NewMemo(&errorCleaner{}, 2)

	if _, err := m.Clean("x"); err == nil {
		t.Fatal("expected error")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestMemo_SameOutputAsInner(t *testing.T) {
	chain := NewChain(NewEntityDecoder(), NewTagStripper(false), NewWhitespaceNormalizer())
	m := NewMemo(chain, 0)

	inputs := []string{"&lt;p&gt;x&lt;/p&gt;", "", "  spaced  ", "&lt;p&gt;x&lt;/p&gt;"}
	for _, in := range inputs {
		want, _ := chain.Clean(in)
		got, _ := m.Clean(in)
		if got != want {
			t.Errorf("memo(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMemo_Concurrent(t *testing.T) {
	m := NewMemo(NewWhitespaceNormalizer(), 8)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got, _ := m.Clean(" a  b "); got != "a b" {
					t.Errorf("Clean() = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMemo_Name(t *testing.T) {
	m := NewMemo(NewNoop(), 1)
	if got := m.Name(); got != "memo(noop)" {
		t.Errorf("Name() = %q, want %q", got, "memo(noop)")
	}
}
