package service

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/tieubaoca/thinknotes-be/types"
)

var (
	boldRe   = regexp.MustCompile(`(?s)\*\*(.+?)\*\*`)
	bulletRe = regexp.MustCompile(`^\s*[\*\-\+]\s+`)
)

// Page layout in points. Letter page, 0.75 inch margins.
const (
	pageMargin    = 54.0
	titleSize     = 18.0
	titleLineHt   = 22.0
	headingSize   = 14.0
	headingLineHt = 16.0
	bodySize      = 10.5
	bodyLineHt    = 14.0
	bulletIndent  = 14.0
	smallGap      = 6.0
	bigGap        = 12.0
)

// PDFBuilderService renders generated study content into a printable PDF.
// The summary is treated as a small markdown subset: "###" heading lines,
// "*"/"-"/"+" bullet lines and inline **bold** spans; everything else is
// body text. This is deliberately not a full markdown engine.
type PDFBuilderService struct{}

func NewPDFBuilderService() *PDFBuilderService {
	return &PDFBuilderService{}
}

// Build produces one complete PDF document in memory. On any layout error
// no bytes are returned, so callers never see a truncated document.
func (s *PDFBuilderService) Build(summary string, flashcards []any) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.Write(titleLineHt, tr("ThinkNotes.AI - AI Summary"))
	pdf.Ln(titleLineHt)
	pdf.Ln(bigGap)

	if summary != "" {
		s.writeHeading(pdf, tr, "<b>Summary:</b>")
		pdf.Ln(smallGap)
		s.writeSummary(pdf, tr, summary)
	}

	if len(flashcards) > 0 {
		pdf.Ln(bigGap)
		s.writeHeading(pdf, tr, "<b>Flashcards:</b>")
		pdf.Ln(smallGap)
		s.writeFlashcards(pdf, tr, flashcards)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

// writeSummary walks the summary line by line: blank lines emit a gap,
// "###" lines become headings, contiguous bullet lines become one list, and
// anything else accumulates into a paragraph until the next marker.
func (s *PDFBuilderService) writeSummary(pdf *fpdf.Fpdf, tr func(string) string, summary string) {
	lines := splitLines(summary)
	i := 0
	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")
		if strings.TrimSpace(line) == "" {
			pdf.Ln(smallGap)
			i++
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), "###") {
			text := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
			s.writeHeading(pdf, tr, escapePreserveBold(text))
			i++
			continue
		}

		if bulletRe.MatchString(line) {
			for i < len(lines) && bulletRe.MatchString(lines[i]) {
				raw := strings.TrimSpace(bulletRe.ReplaceAllString(lines[i], ""))
				s.writeBullet(pdf, tr, escapePreserveBold(raw))
				i++
			}
			pdf.Ln(smallGap)
			continue
		}

		paraLines := []string{strings.TrimSpace(line)}
		i++
		for i < len(lines) &&
			strings.TrimSpace(lines[i]) != "" &&
			!strings.HasPrefix(strings.TrimSpace(lines[i]), "###") &&
			!bulletRe.MatchString(lines[i]) {
			paraLines = append(paraLines, strings.TrimSpace(lines[i]))
			i++
		}
		paraText := strings.TrimSpace(strings.Join(paraLines, " "))
		if paraText != "" {
			s.writeBody(pdf, tr, escapePreserveBold(paraText))
		}
		pdf.Ln(smallGap)
	}
}

// writeFlashcards emits "Q<i>:" body lines and "A<i>:" bullet lines per
// card. Entries the shape sniffer rejects render nothing but still consume
// their index and gap.
func (s *PDFBuilderService) writeFlashcards(pdf *fpdf.Fpdf, tr func(string) string, flashcards []any) {
	for idx, entry := range flashcards {
		if card, ok := CoerceFlashcard(entry); ok {
			if card.Question != "" {
				s.writeBody(pdf, tr, escapePreserveBold(fmt.Sprintf("Q%d: %s", idx+1, card.Question)))
			}
			if card.Answer != "" {
				s.writeBullet(pdf, tr, escapePreserveBold(fmt.Sprintf("A%d: %s", idx+1, card.Answer)))
			}
		}
		pdf.Ln(smallGap)
	}
}

func (s *PDFBuilderService) writeHeading(pdf *fpdf.Fpdf, tr func(string) string, markup string) {
	s.writeSpans(pdf, tr, markup, headingSize, headingLineHt, true)
	pdf.Ln(smallGap)
}

func (s *PDFBuilderService) writeBody(pdf *fpdf.Fpdf, tr func(string) string, markup string) {
	s.writeSpans(pdf, tr, markup, bodySize, bodyLineHt, false)
}

func (s *PDFBuilderService) writeBullet(pdf *fpdf.Fpdf, tr func(string) string, markup string) {
	left, _, _, _ := pdf.GetMargins()
	pdf.SetLeftMargin(left + bulletIndent)
	pdf.SetX(left + smallGap)
	pdf.SetFont("Helvetica", "", bodySize)
	pdf.Write(bodyLineHt, tr("• "))
	s.writeSpans(pdf, tr, markup, bodySize, bodyLineHt, false)
	pdf.SetLeftMargin(left)
	pdf.SetX(left)
}

// writeSpans writes one logical line, toggling the bold font per span, then
// advances to the next line. Write wraps at the right margin on its own.
func (s *PDFBuilderService) writeSpans(pdf *fpdf.Fpdf, tr func(string) string, markup string, size, lineHt float64, baseBold bool) {
	for _, sp := range spansFromMarkup(markup) {
		style := ""
		if baseBold || sp.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.Write(lineHt, tr(sp.text))
	}
	pdf.Ln(lineHt)
}

type span struct {
	text string
	bold bool
}

// escapePreserveBold escapes text for the internal paragraph markup while
// turning **text** into <b> tags. The bold interior is escaped on its own,
// so literal '<' and '&' inside a span stay safe; unmatched ** sequences
// are left as literal text.
func escapePreserveBold(text string) string {
	var b strings.Builder
	last := 0
	for _, m := range boldRe.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(escapeMarkup(text[last:m[0]]))
		b.WriteString("<b>")
		b.WriteString(escapeMarkup(text[m[2]:m[3]]))
		b.WriteString("</b>")
		last = m[1]
	}
	b.WriteString(escapeMarkup(text[last:]))
	return b.String()
}

func escapeMarkup(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}

func unescapeMarkup(text string) string {
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&amp;", "&")
	return text
}

// spansFromMarkup decodes the escaped markup back into styled spans for the
// PDF writer. A dangling <b> without its closing tag is treated as text.
func spansFromMarkup(markup string) []span {
	var spans []span
	rest := markup
	for rest != "" {
		start := strings.Index(rest, "<b>")
		if start == -1 {
			spans = appendSpan(spans, rest, false)
			break
		}
		end := strings.Index(rest[start+3:], "</b>")
		if end == -1 {
			spans = appendSpan(spans, rest, false)
			break
		}
		spans = appendSpan(spans, rest[:start], false)
		spans = appendSpan(spans, rest[start+3:start+3+end], true)
		rest = rest[start+3+end+4:]
	}
	return spans
}

func appendSpan(spans []span, markup string, bold bool) []span {
	if markup == "" {
		return spans
	}
	return append(spans, span{text: unescapeMarkup(markup), bold: bold})
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
