package document

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	serrors "github.com/matzehuels/sectionflow/pkg/errors"
	"github.com/matzehuels/sectionflow/pkg/layout"
)

// Validate reports every structural problem in the document at once.
//
// Degenerate geometry (negative sizes or spacing) is not an error here: the
// engine recovers from it and reports warnings. Validate rejects what the
// engine cannot interpret: unknown modes, negative column counts, invalid
// aspect ratios, non-finite numbers and duplicate item IDs.
func (d *Document) Validate() error {
	var errs error
	add := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	if d.DefaultColumns < 0 {
		add("default_columns: must not be negative, got %d", d.DefaultColumns)
	}

	seen := make(map[string]string)
	for si, s := range d.Sections {
		where := sectionName(si, s)
		if s.Mode != "" {
			if _, err := layout.ParseMode(s.Mode); err != nil {
				add("%s: %v", where, err)
			}
		}
		if s.Columns != nil {
			if err := serrors.ValidateColumns(*s.Columns); err != nil {
				add("%s: %s", where, serrors.UserMessage(err))
			}
		}
		for _, f := range []struct {
			name string
			v    *float64
		}{
			{"interitem_spacing", s.InteritemSpacing},
			{"line_spacing", s.LineSpacing},
			{"min_item_width", s.MinItemWidth},
			{"header_height", s.HeaderHeight},
			{"footer_height", s.FooterHeight},
		} {
			if f.v != nil && !finite(*f.v) {
				add("%s: %s must be a finite number", where, f.name)
			}
		}

		for ii, it := range s.Items {
			if !finite(it.Width) || !finite(it.Height) {
				add("%s item %d: width and height must be finite", where, ii)
			}
			if it.AspectRatio < 0 || !finite(it.AspectRatio) {
				add("%s item %d: aspect_ratio must be a positive number", where, ii)
			}
			if it.ID == "" {
				continue
			}
			if prev, ok := seen[it.ID]; ok {
				add("%s item %d: duplicate id %q (first used in %s)", where, ii, it.ID, prev)
				continue
			}
			seen[it.ID] = where
		}
	}

	if errs != nil {
		return serrors.Wrap(serrors.ErrCodeInvalidDocument, errs, "invalid document (%d problems)", len(multierr.Errors(errs)))
	}
	return nil
}

func sectionName(i int, s Section) string {
	if s.ID != "" {
		return fmt.Sprintf("section %d (%s)", i, s.ID)
	}
	return fmt.Sprintf("section %d", i)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
