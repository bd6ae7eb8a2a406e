package export

import "context"

// Exporter renders a finished transcript into companion formats.
type Exporter interface {
	// WriteDocx writes text as a Word document at outputPath, one paragraph
	// per line.
	WriteDocx(ctx context.Context, title, text, outputPath string) error
}
