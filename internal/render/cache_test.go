package render

import (
	"sync"
	"testing"

	"github.com/charmbracelet/glamour"
)

func TestPoolPerOptionSet(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions()
	if poolFor(opts) != poolFor(DefaultOptions()) {
		t.Error("equal options should share a pool")
	}
	if poolFor(opts) == poolFor(opts.WithWidth(100)) {
		t.Error("different widths should not share a pool")
	}
	if poolFor(opts) == poolFor(opts.WithStyle(StyleLight)) {
		t.Error("different styles should not share a pool")
	}
	if CacheSize() != 3 {
		t.Errorf("expected pool count 3, got %d", CacheSize())
	}
}

func TestWithRenderer_ReusesRenderer(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions()
	var first *glamour.TermRenderer
	if _, err := withRenderer(opts, func(r *glamour.TermRenderer) (string, error) {
		first = r
		return "", nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == nil {
		t.Fatal("expected non-nil renderer")
	}

	got, err := withRenderer(opts, func(r *glamour.TermRenderer) (string, error) {
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Errorf("withRenderer = %q, %v", got, err)
	}
	if CacheSize() != 1 {
		t.Errorf("expected pool count 1, got %d", CacheSize())
	}
}

func TestWithRenderer_InvalidStyle(t *testing.T) {
	ClearCache()
	defer ClearCache()

	called := false
	_, err := withRenderer(DefaultOptions().WithStyle("no/such/style.json"), func(*glamour.TermRenderer) (string, error) {
		called = true
		return "", nil
	})
	if err == nil {
		t.Error("expected error for invalid style path")
	}
	if called {
		t.Error("fn must not run without a renderer")
	}
}

func TestMarkdown_Concurrent(t *testing.T) {
	ClearCache()
	defer ClearCache()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("**dharma** and *karma*", DefaultOptions()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render failed: %v", err)
	}
	if CacheSize() != 1 {
		t.Errorf("expected pool count 1, got %d", CacheSize())
	}
}
