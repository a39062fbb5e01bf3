package layout_test

import (
	"fmt"

	"github.com/matzehuels/sectionflow/pkg/layout"
)

type feed []int

func (f feed) SectionCount() int         { return len(f) }
func (f feed) ItemCount(section int) int { return f[section] }

func ExampleEngine() {
	sizes := layout.SizeFunc(func(ref layout.ItemRef, width float64) layout.Size {
		return layout.Size{Width: 100, Height: 40}
	})
	eng := layout.New(feed{3}, sizes,
		layout.WithWidth(230),
		layout.WithOverrides(layout.SectionOverrides{
			InteritemSpacing: layout.Ptr(10.0),
			HeaderHeight:     layout.Ptr(24.0),
		}))

	for _, a := range eng.Attributes() {
		fmt.Printf("%-6s %s at (%v, %v)\n", a.Kind, a.Ref, a.Frame.X, a.Frame.Y)
	}
	fmt.Println("content:", eng.ContentSize())
	// Output:
	// header 0.0 at (0, 0)
	// cell   0.0 at (0, 24)
	// cell   0.1 at (110, 24)
	// cell   0.2 at (0, 64)
	// content: {230 104}
}

func ExampleEngine_NotifyWidthChanged() {
	sizes := layout.SizeFunc(func(layout.ItemRef, float64) layout.Size {
		return layout.Size{Width: 100, Height: 40}
	})
	eng := layout.New(feed{4}, sizes, layout.WithWidth(200))
	fmt.Println(eng.ContentSize().Height, eng.State())

	fmt.Println(eng.NotifyWidthChanged(200), eng.State())
	fmt.Println(eng.NotifyWidthChanged(400), eng.State())
	fmt.Println(eng.ContentSize().Height, eng.State())
	// Output:
	// 80 fresh
	// false fresh
	// true stale
	// 40 fresh
}

func ExampleEngine_rtl() {
	sizes := layout.SizeFunc(func(layout.ItemRef, float64) layout.Size {
		return layout.Size{Width: 50, Height: 20}
	})
	eng := layout.New(feed{2}, sizes, layout.WithWidth(200), layout.WithRTL(true))

	for _, a := range eng.Attributes() {
		fmt.Println(a.Ref, a.Frame.X)
	}
	// Output:
	// 0.0 150
	// 0.1 100
}

func ExamplePlaceWaterfall() {
	h := []float64{50, 80, 30, 40}
	sizes := layout.SizeFunc(func(ref layout.ItemRef, width float64) layout.Size {
		return layout.Size{Width: width, Height: h[ref.Item]}
	})
	placed := layout.PlaceWaterfall(layout.SectionParams{
		Count:          len(h),
		ContainerWidth: 210,
		Config:         layout.SectionConfig{Columns: 2, InteritemSpacing: 10, LineSpacing: 10},
	}, sizes)

	for i, f := range placed.Frames {
		fmt.Printf("item %d: x=%v y=%v\n", i, f.X, f.Y)
	}
	fmt.Println("columns:", placed.ColumnHeights)
	// Output:
	// item 0: x=0 y=0
	// item 1: x=110 y=0
	// item 2: x=0 y=60
	// item 3: x=110 y=90
	// columns: [100 140]
}
