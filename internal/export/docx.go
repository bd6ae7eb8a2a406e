package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 12
	titleSize = 16
)

func (e *implExporter) WriteDocx(ctx context.Context, title, text, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)
	doc.AddParagraph("")

	lines := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		addRun(doc.AddParagraph(""), trimmed, false, fontSize)
		lines++
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx %s: %w", outputPath, err)
	}

	e.logger.Debug(ctx, "Wrote %d paragraphs to %s", lines, outputPath)
	return nil
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
