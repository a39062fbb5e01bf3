package sink

import (
	"github.com/matzehuels/sectionflow/pkg/document"
)

// RenderJSON exports the layout as a pretty-printed JSON document with a
// trailing newline. The output can be read back with [document.UnmarshalLayout].
func RenderJSON(l document.Layout) ([]byte, error) {
	data, err := document.MarshalLayout(l)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
