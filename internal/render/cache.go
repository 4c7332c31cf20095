package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers holds idle glamour renderers per option set. A TermRenderer is
// checked out by one Render call at a time.
var renderers = struct {
	sync.Mutex
	pools map[Options]*sync.Pool
}{pools: make(map[Options]*sync.Pool)}

func poolFor(opts Options) *sync.Pool {
	renderers.Lock()
	defer renderers.Unlock()

	pool, ok := renderers.pools[opts]
	if !ok {
		pool = &sync.Pool{}
		renderers.pools[opts] = pool
	}
	return pool
}

// withRenderer runs fn with a renderer for opts, building one when none is idle
func withRenderer(opts Options, fn func(*glamour.TermRenderer) (string, error)) (string, error) {
	pool := poolFor(opts)

	r, _ := pool.Get().(*glamour.TermRenderer)
	if r == nil {
		var err error
		if r, err = newRenderer(opts); err != nil {
			return "", err
		}
	}
	defer pool.Put(r)

	return fn(r)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	ropts := []glamour.TermRendererOption{
		styleOption(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}

// ClearCache drops every pooled renderer.
func ClearCache() {
	renderers.Lock()
	renderers.pools = make(map[Options]*sync.Pool)
	renderers.Unlock()
}

// CacheSize returns the number of distinct option sets seen.
func CacheSize() int {
	renderers.Lock()
	defer renderers.Unlock()
	return len(renderers.pools)
}
