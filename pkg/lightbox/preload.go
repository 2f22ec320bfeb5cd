package lightbox

import (
	"context"
	"sync"

	"github.com/matzehuels/justify/pkg/gallery"
)

// Decoder loads and decodes one full-size image. Implementations only need
// to make the image ready; the result is not kept.
type Decoder interface {
	Decode(ctx context.Context, url string) error
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, url string) error

// Decode calls f.
func (f DecoderFunc) Decode(ctx context.Context, url string) error { return f(ctx, url) }

// Record is one cached preload. It completes exactly once.
type Record struct {
	URL  string
	done chan struct{}
	err  error
}

// Done is closed when decoding has finished.
func (r *Record) Done() <-chan struct{} { return r.done }

// Err returns the decode error. It is only meaningful after Done is closed.
func (r *Record) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the record completes or ctx ends.
func (r *Record) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Preloader caches full-size image preloads by URL. A failed decode stays
// cached; the viewer shows the image either way, as a browser would.
type Preloader struct {
	dec Decoder

	mu      sync.Mutex
	records map[string]*Record
	wg      sync.WaitGroup
}

// NewPreloader returns an empty cache. A nil decoder completes every
// preload immediately.
func NewPreloader(dec Decoder) *Preloader {
	return &Preloader{dec: dec, records: make(map[string]*Record)}
}

// Preload returns the record for url, starting a decode on first use.
// The empty URL yields nil.
func (p *Preloader) Preload(ctx context.Context, url string) *Record {
	if url == "" {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.records[url]; ok {
		return r
	}

	r := &Record{URL: url, done: make(chan struct{})}
	p.records[url] = r

	if p.dec == nil {
		close(r.done)
		return r
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(r.done)
		r.err = p.dec.Decode(ctx, url)
	}()
	return r
}

// Around preloads the neighbours of index given by Targets.
func (p *Preloader) Around(ctx context.Context, items []gallery.MediaItem, index int) []*Record {
	var out []*Record
	for _, i := range Targets(items, index) {
		if r := p.Preload(ctx, items[i].FullURL()); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Cached returns the record for url if one exists.
func (p *Preloader) Cached(url string) (*Record, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.records[url]
	return r, ok
}

// Len returns the number of cached records.
func (p *Preloader) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.records)
}

// Reset drops every cached record. In-flight decodes finish in the background.
func (p *Preloader) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = make(map[string]*Record)
}

// Wait blocks until every started decode has returned.
func (p *Preloader) Wait() {
	p.wg.Wait()
}

// preloadOffsets is the neighbour order: next, previous, then two away.
var preloadOffsets = [...]int{1, -1, 2, -2}

// Targets returns the item indices to preload around index: index+1,
// index-1, index+2 and index-2 with wrap-around. Videos, duplicates and
// index itself are skipped.
func Targets(items []gallery.MediaItem, index int) []int {
	n := len(items)
	if n == 0 {
		return nil
	}
	index = wrap(index, n)

	var out []int
	seen := map[int]bool{index: true}
	for _, off := range preloadOffsets {
		i := wrap(index+off, n)
		if seen[i] {
			continue
		}
		seen[i] = true
		if items[i].IsVideo() {
			continue
		}
		out = append(out, i)
	}
	return out
}
