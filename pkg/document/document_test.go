package document

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/multierr"

	serrors "github.com/matzehuels/sectionflow/pkg/errors"
	"github.com/matzehuels/sectionflow/pkg/layout"
)

const feedJSON = `{
  "name": "feed",
  "sections": [
    {"id": "stories", "header_height": 44, "interitem_spacing": 8,
     "items": [{"id": "a", "width": 120, "height": 80}]},
    {"id": "photos", "mode": "waterfall", "columns": 2,
     "items": [{"id": "p1", "aspect_ratio": 0.75}]}
  ]
}`

const feedTOML = `
name = "feed"

[[sections]]
id = "stories"
header_height = 44.0
interitem_spacing = 8.0

[[sections.items]]
id = "a"
width = 120.0
height = 80.0

[[sections]]
id = "photos"
mode = "waterfall"
columns = 2

[[sections.items]]
id = "p1"
aspect_ratio = 0.75
`

const feedYAML = `
name: feed
sections:
  - id: stories
    header_height: 44
    interitem_spacing: 8
    items:
      - {id: a, width: 120, height: 80}
  - id: photos
    mode: waterfall
    columns: 2
    items:
      - {id: p1, aspect_ratio: 0.75}
`

func TestParseFormats(t *testing.T) {
	want, err := Parse([]byte(feedJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse(json) error: %v", err)
	}
	if want.Name != "feed" || len(want.Sections) != 2 || want.TotalItems() != 2 {
		t.Fatalf("Parse(json) = %+v", want)
	}
	if got := *want.Sections[0].HeaderHeight; got != 44 {
		t.Errorf("header_height = %v, want 44", got)
	}

	tests := []struct {
		format string
		data   string
	}{
		{FormatTOML, feedTOML},
		{FormatYAML, feedYAML},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Parse(%s) = %+v, want %+v", tt.format, got, want)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{FormatJSON, `{"sections": [{"colums": 2}]}`},
		{FormatTOML, "[[sections]]\ncolums = 2\n"},
		{FormatYAML, "sections:\n  - colums: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if !serrors.Is(err, serrors.ErrCodeInvalidDocument) {
				t.Errorf("Parse() error = %v, want INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	doc, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("Parse(empty yaml) error: %v", err)
	}
	if doc.SectionCount() != 0 {
		t.Errorf("SectionCount() = %d, want 0", doc.SectionCount())
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), "xml")
	if !serrors.Is(err, serrors.ErrCodeInvalidFormat) {
		t.Errorf("Parse(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"feed.json", FormatJSON, false},
		{"feed.TOML", FormatTOML, false},
		{"dir/feed.yml", FormatYAML, false},
		{"feed.yaml", FormatYAML, false},
		{"feed.txt", "", true},
		{"feed", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(t.TempDir() + "/missing.yaml")
	if !serrors.Is(err, serrors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cols := -2
	doc := &Document{
		DefaultColumns: -1,
		Sections: []Section{
			{ID: "a", Mode: "grid", Columns: &cols, Items: []Item{{ID: "x"}, {ID: "x"}}},
			{Items: []Item{{AspectRatio: -1}}},
		},
	}
	err := doc.Validate()
	if !serrors.Is(err, serrors.ErrCodeInvalidDocument) {
		t.Fatalf("Validate() error = %v, want INVALID_DOCUMENT", err)
	}
	problems := multierr.Errors(err.(*serrors.Error).Cause)
	if len(problems) != 5 {
		t.Fatalf("Validate() reported %d problems, want 5: %v", len(problems), problems)
	}
	for i, want := range []string{"default_columns", "unknown mode", "column count", "duplicate id", "aspect_ratio"} {
		if !strings.Contains(problems[i].Error(), want) {
			t.Errorf("problem %d = %q, want it to mention %q", i, problems[i], want)
		}
	}
}

func TestValidateAcceptsDegenerateGeometry(t *testing.T) {
	neg := -10.0
	doc := &Document{Sections: []Section{{
		InteritemSpacing: &neg,
		HeaderHeight:     &neg,
		Items:            []Item{{Width: -5, Height: -5}},
	}}}
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestItemSize(t *testing.T) {
	doc := &Document{Sections: []Section{
		{Items: []Item{
			{Width: 120, Height: 80},
			{Height: 40},
			{Width: 100, AspectRatio: 2},
		}},
		{Mode: "waterfall", Items: []Item{
			{Width: 500, Height: 60},
			{AspectRatio: 0.5},
		}},
	}}

	tests := []struct {
		name string
		ref  layout.ItemRef
		want layout.Size
	}{
		{"explicit", layout.ItemRef{Section: 0, Item: 0}, layout.Size{Width: 120, Height: 80}},
		{"full width", layout.ItemRef{Section: 0, Item: 1}, layout.Size{Width: 300, Height: 40}},
		{"aspect ratio", layout.ItemRef{Section: 0, Item: 2}, layout.Size{Width: 100, Height: 50}},
		{"waterfall ignores width", layout.ItemRef{Section: 1, Item: 0}, layout.Size{Width: 300, Height: 60}},
		{"waterfall aspect", layout.ItemRef{Section: 1, Item: 1}, layout.Size{Width: 300, Height: 600}},
		{"out of range", layout.ItemRef{Section: 2, Item: 0}, layout.Size{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.ItemSize(tt.ref, 300); got != tt.want {
				t.Errorf("ItemSize(%v) = %+v, want %+v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestSectionOverrides(t *testing.T) {
	cols := 3
	spacing := 12.0
	doc := &Document{Sections: []Section{
		{Mode: "waterfall", Columns: &cols, InteritemSpacing: &spacing, Insets: &Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}},
		{},
	}}

	o := doc.SectionOverrides(0)
	if o.Mode == nil || *o.Mode != layout.ModeWaterfall {
		t.Errorf("Mode = %v, want waterfall", o.Mode)
	}
	if o.ColumnCount == nil || *o.ColumnCount != 3 {
		t.Errorf("ColumnCount = %v, want 3", o.ColumnCount)
	}
	if o.InteritemSpacing == nil || *o.InteritemSpacing != 12 {
		t.Errorf("InteritemSpacing = %v, want 12", o.InteritemSpacing)
	}
	if want := (layout.Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}); o.Insets == nil || *o.Insets != want {
		t.Errorf("Insets = %v, want %v", o.Insets, want)
	}
	if o.LineSpacing != nil || o.HeaderHeight != nil {
		t.Error("unset fields should stay nil")
	}

	if !doc.SectionOverrides(1).IsZero() {
		t.Error("empty section should supply no overrides")
	}
	if !doc.SectionOverrides(5).IsZero() {
		t.Error("out-of-range section should supply no overrides")
	}
}

func TestDataSource(t *testing.T) {
	doc := Sample()
	if doc.SectionCount() != 2 {
		t.Errorf("SectionCount() = %d, want 2", doc.SectionCount())
	}
	if doc.ItemCount(0) != 8 || doc.ItemCount(1) != 7 {
		t.Errorf("ItemCount() = %d, %d, want 8, 7", doc.ItemCount(0), doc.ItemCount(1))
	}
	if doc.ItemCount(-1) != 0 || doc.ItemCount(2) != 0 {
		t.Error("out-of-range ItemCount should be 0")
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("Sample().Validate() error = %v", err)
	}
}

func TestMarshalStable(t *testing.T) {
	a, err := Marshal(Sample())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Marshal(Sample())
	if string(a) != string(b) {
		t.Error("Marshal() output differs for identical documents")
	}
}
