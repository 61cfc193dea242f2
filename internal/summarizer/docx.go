package summarizer

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont      = "Calibri"
	docxBodySize  = 11
	docxTitleSize = 16
	docxColor     = "000000"
)

var (
	mdHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	mdStrong   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdBullet   = regexp.MustCompile(`^[-*+]\s+(.+)$`)
	mdNumbered = regexp.MustCompile(`^(\d+)[.)]\s+(.+)$`)
)

// markdownToDocx renders a summary written in light markdown (headings,
// bullets, numbered items, **bold**) into a docx file headed by title.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	writeRun(doc.AddParagraph(""), title, true, docxTitleSize)

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "---" {
			continue
		}

		p := doc.AddParagraph("")
		switch {
		case mdHeading.MatchString(line):
			m := mdHeading.FindStringSubmatch(line)
			writeRun(p, m[2], true, headingSize(len(m[1])))
		case mdBullet.MatchString(line):
			writeInline(p, "• "+mdBullet.FindStringSubmatch(line)[1])
		case mdNumbered.MatchString(line):
			m := mdNumbered.FindStringSubmatch(line)
			writeInline(p, m[1]+". "+m[2])
		default:
			writeInline(p, line)
		}
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 15
	case 2:
		return 14
	case 3:
		return 13
	default:
		return docxBodySize + 1
	}
}

func writeRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(stripInlineMarks(text)).Font(docxFont).Size(size).Color(docxColor)
	if bold {
		run.Bold(true)
	}
}

// writeInline splits text on **bold** spans and emits one run per span.
func writeInline(p *docx.Paragraph, text string) {
	plain := mdStrong.Split(text, -1)
	strong := mdStrong.FindAllStringSubmatch(text, -1)

	for i, part := range plain {
		if part != "" {
			writeRun(p, part, false, docxBodySize)
		}
		if i < len(strong) {
			writeRun(p, strong[i][1], true, docxBodySize)
		}
	}
}

func stripInlineMarks(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
