package lightbox

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/justify/pkg/gallery"
)

func media() []gallery.MediaItem {
	return []gallery.MediaItem{
		gallery.NewImage("t0.jpg", "f0.jpg", 3, 2, gallery.Caption{Title: "Zero", Line1: "L1", Line2: "L2"}),
		gallery.NewImage("t1.jpg", "", 2, 3, gallery.Caption{Line1: "only line1"}),
		gallery.NewVideo("v2.mp4", "p2.jpg", 1080, 1920, gallery.Caption{Title: "Clip"}),
		gallery.NewImage("t3.jpg", "f3.jpg", 1, 1, gallery.Caption{}),
		gallery.NewImage("t4.jpg", "f4.jpg", 4, 3, gallery.Caption{Line2: "tail"}),
	}
}

func TestTargets(t *testing.T) {
	items := media()
	tests := []struct {
		index int
		want  []int
	}{
		{0, []int{1, 4, 3}},
		{3, []int{4, 0, 1}},
		{4, []int{0, 3, 1}},
		{-1, []int{0, 3, 1}},
		{12, []int{3, 1, 4, 0}},
	}

	for _, tt := range tests {
		got := Targets(items, tt.index)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Targets(%d) mismatch (-want +got):\n%s", tt.index, diff)
		}
	}

	if got := Targets(nil, 0); got != nil {
		t.Errorf("Targets(nil) = %v, want nil", got)
	}
	two := items[:2]
	if diff := cmp.Diff([]int{1}, Targets(two, 0)); diff != "" {
		t.Errorf("Targets on two items mismatch:\n%s", diff)
	}
}

type countingDecoder struct {
	mu    sync.Mutex
	calls map[string]int
	fail  string
}

func (d *countingDecoder) Decode(_ context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.calls == nil {
		d.calls = make(map[string]int)
	}
	d.calls[url]++
	if url == d.fail {
		return errors.New("decode failed")
	}
	return nil
}

func TestPreloaderCachesByURL(t *testing.T) {
	ctx := context.Background()
	dec := &countingDecoder{fail: "bad.jpg"}
	p := NewPreloader(dec)

	r1 := p.Preload(ctx, "a.jpg")
	r2 := p.Preload(ctx, "a.jpg")
	if r1 != r2 {
		t.Error("same URL should return the cached record")
	}
	if err := r1.Wait(ctx); err != nil {
		t.Errorf("Wait() error: %v", err)
	}

	bad := p.Preload(ctx, "bad.jpg")
	if err := bad.Wait(ctx); err == nil {
		t.Error("failed decode should surface its error")
	}
	if again := p.Preload(ctx, "bad.jpg"); again != bad {
		t.Error("failed preloads stay cached")
	}

	if p.Preload(ctx, "") != nil {
		t.Error("empty URL should not be cached")
	}

	p.Wait()
	if dec.calls["a.jpg"] != 1 || dec.calls["bad.jpg"] != 1 {
		t.Errorf("decode calls = %v, want one per URL", dec.calls)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}

	p.Reset()
	if p.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", p.Len())
	}
	if _, ok := p.Cached("a.jpg"); ok {
		t.Error("Reset() should drop cached records")
	}
}

func TestPreloaderConcurrent(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	p := NewPreloader(DecoderFunc(func(context.Context, string) error {
		calls.Add(1)
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Preload(ctx, "shared.jpg")
		}()
	}
	wg.Wait()
	p.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("decoder called %d times, want 1", got)
	}
}

func TestPreloaderNilDecoder(t *testing.T) {
	p := NewPreloader(nil)
	r := p.Preload(context.Background(), "x.jpg")
	select {
	case <-r.Done():
	default:
		t.Error("nil decoder should complete immediately")
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestPreloaderAround(t *testing.T) {
	p := NewPreloader(nil)
	recs := p.Around(context.Background(), media(), 0)
	var urls []string
	for _, r := range recs {
		urls = append(urls, r.URL)
	}
	want := []string{"t1.jpg", "f4.jpg", "f3.jpg"}
	if diff := cmp.Diff(want, urls); diff != "" {
		t.Errorf("Around() mismatch (-want +got):\n%s", diff)
	}
}
