package pipeline

import (
	"fmt"

	"github.com/matzehuels/sectionflow/pkg/document"
	"github.com/matzehuels/sectionflow/pkg/sink"
)

// Render generates output artifacts in the requested formats.
func Render(l document.Layout, opts Options) (map[string][]byte, error) {
	sinkOpts := buildSinkOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatSVG:
			data = sink.RenderSVG(l, sinkOpts...)
		case FormatText:
			data = sink.RenderText(l, sinkOpts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSinkOptions(opts Options) []sink.Option {
	var sinkOpts []sink.Option
	if opts.Labels {
		sinkOpts = append(sinkOpts, sink.WithLabels())
	}
	if opts.Scale > 0 {
		sinkOpts = append(sinkOpts, sink.WithScale(opts.Scale))
	}
	if opts.TextColumns > 0 {
		sinkOpts = append(sinkOpts, sink.WithColumns(opts.TextColumns))
	}
	return sinkOpts
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := document.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(l, opts)
}
