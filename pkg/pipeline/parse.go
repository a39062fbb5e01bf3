package pipeline

import (
	"context"

	"github.com/matzehuels/sectionflow/pkg/cache"
	"github.com/matzehuels/sectionflow/pkg/document"
)

// Parse returns the document named by the options: the inline Document
// when set, otherwise the file at Path.
func Parse(ctx context.Context, opts Options) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Document != nil {
		if err := opts.Document.Validate(); err != nil {
			return nil, err
		}
		return opts.Document, nil
	}
	return document.ReadFile(opts.Path)
}

// HashDocument returns the content hash used in layout cache keys.
func HashDocument(doc *document.Document) (string, error) {
	data, err := document.Marshal(doc)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
