// Package printing renders HTML documents to PDF through a headless
// Chrome instance. It backs the sale receipt endpoint.
package printing

import "context"

// Renderer turns a self-contained HTML document into PDF bytes.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}
