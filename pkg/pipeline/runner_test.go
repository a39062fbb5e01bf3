package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/sectionflow/pkg/cache"
	"github.com/matzehuels/sectionflow/pkg/document"
	"github.com/matzehuels/sectionflow/pkg/observability"
)

func fixtureDoc() *document.Document {
	spacing, header := 10.0, 24.0
	return &document.Document{
		Name: "fixture",
		Sections: []document.Section{{
			ID:               "s",
			InteritemSpacing: &spacing,
			HeaderHeight:     &header,
			Items: []document.Item{
				{ID: "a", Width: 100, Height: 40},
				{ID: "b", Width: 100, Height: 40},
			},
		}},
	}
}

type countingCacheHooks struct {
	mu     sync.Mutex
	hits   map[string]int
	miss   map[string]int
	stored map[string]int
}

func newCountingCacheHooks(t *testing.T) *countingCacheHooks {
	h := &countingCacheHooks{hits: map[string]int{}, miss: map[string]int{}, stored: map[string]int{}}
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)
	return h
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, k string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[k]++
}

func (h *countingCacheHooks) OnCacheMiss(_ context.Context, k string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.miss[k]++
}

func (h *countingCacheHooks) OnCacheSet(_ context.Context, k string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stored[k]++
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{
		Document: fixtureDoc(),
		Width:    230,
		Formats:  []string{FormatJSON, FormatSVG, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Layout.Height != 64 || len(res.Layout.Blocks) != 3 {
		t.Errorf("Layout = height %v with %d blocks, want 64 with 3", res.Layout.Height, len(res.Layout.Blocks))
	}
	if res.Layout.ID == "" {
		t.Error("Layout.ID should be set")
	}
	if res.DocumentHash == "" {
		t.Error("DocumentHash should be set")
	}
	if res.Stats.SectionCount != 1 || res.Stats.ItemCount != 2 || res.Stats.BlockCount != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	for _, f := range []string{FormatJSON, FormatSVG, FormatText} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}
}

func TestRunnerExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.yaml")
	yaml := "sections:\n  - items:\n      - {width: 50, height: 20}\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Path: path, Width: 100})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Layout.Height != 20 {
		t.Errorf("Height = %v, want 20", res.Layout.Height)
	}
	if _, ok := res.Artifacts[FormatJSON]; !ok {
		t.Error("default format should be json")
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"no source", Options{}, "invalid options"},
		{"missing file", Options{Path: filepath.Join(t.TempDir(), "nope.json")}, "parse"},
		{"bad format", Options{Document: fixtureDoc(), Formats: []string{"gif"}}, "invalid options"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Execute() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunnerCaches(t *testing.T) {
	hooks := newCountingCacheHooks(t)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Document: fixtureDoc(), Width: 230, Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	if first.CacheInfo.LayoutHit || !second.CacheInfo.LayoutHit {
		t.Errorf("layout hits = %v, %v, want false, true", first.CacheInfo.LayoutHit, second.CacheInfo.LayoutHit)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second render should hit the cache")
	}
	if first.Layout.ID != second.Layout.ID {
		t.Error("cached layout should keep its ID")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs")
	}
	if hooks.hits[keyTypeLayout] != 1 || hooks.miss[keyTypeLayout] != 1 || hooks.stored[keyTypeLayout] != 1 {
		t.Errorf("layout hooks = hit %d miss %d set %d", hooks.hits[keyTypeLayout], hooks.miss[keyTypeLayout], hooks.stored[keyTypeLayout])
	}

	// A different width is a different key.
	opts.Width = 300
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("different width should miss")
	}

	// Refresh bypasses reads.
	opts.Refresh = true
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Error("refresh should not read the cache")
	}
}

func TestRunnerIgnoresCorruptLayout(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	doc := fixtureDoc()
	opts := Options{Width: 230}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}

	hash, _ := HashDocument(doc)
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts(doc))
	if err := c.Set(ctx, key, []byte("not json"), 0); err != nil {
		t.Fatal(err)
	}

	l, hit, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit || l.Height != 64 {
		t.Errorf("hit=%v height=%v, want recompute to 64", hit, l.Height)
	}
}

func TestNewEngineOptions(t *testing.T) {
	doc := fixtureDoc()
	spacing := 30.0
	opts := Options{Width: 230, RTL: true, Spacing: &spacing}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}

	eng := NewEngine(doc, opts)
	if !eng.RTL() || eng.Width() != 230 {
		t.Errorf("engine RTL=%v width=%v", eng.RTL(), eng.Width())
	}
	// 100 + 30 + 100 = 230 still fits on one row; a is mirrored to the right.
	attrs := eng.Attributes()
	if len(attrs) != 3 {
		t.Fatalf("got %d attributes, want 3", len(attrs))
	}
	if a := attrs[1]; a.Frame.X != 130 || a.Frame.Y != 24 {
		t.Errorf("first cell frame = %+v, want x=130 y=24", a.Frame)
	}
	if b := attrs[2]; b.Frame.X != 0 {
		t.Errorf("second cell x = %v, want 0", b.Frame.X)
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	opts := Options{Formats: []string{FormatText}, TextColumns: 23}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	l := GenerateLayout(fixtureDoc(), Options{Width: 230, Alignment: "leading"})
	data, err := document.MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}

	out, err := RenderFromLayoutData(data, opts)
	if err != nil {
		t.Fatalf("RenderFromLayoutData() error: %v", err)
	}
	if txt := string(out[FormatText]); !strings.HasPrefix(txt, "+=====================+") {
		t.Errorf("text artifact =\n%s", txt)
	}

	if _, err := RenderFromLayoutData([]byte("{"), opts); err == nil {
		t.Error("RenderFromLayoutData() should reject bad JSON")
	}
}
