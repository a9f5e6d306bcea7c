package jobtext

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Cleaner normalises raw posting text: markup removal, boilerplate
// removal and whitespace normalisation. It holds no state and is safe
// for concurrent use.
type Cleaner struct{}

// New creates a new Cleaner.
func New() *Cleaner {
	return &Cleaner{}
}

// Pre-compiled regular expressions for cleaning performance.
var (
	markupHint      = regexp.MustCompile(`</?[a-zA-Z][^>]*>|&[a-zA-Z0-9#]+;`)
	tagSpan         = regexp.MustCompile(`</?[a-zA-Z!][^>]*>|</?>`)
	unterminatedTag = regexp.MustCompile(`<[a-zA-Z/!][^>]*$`)
	leftoverEntity  = regexp.MustCompile(`&[a-zA-Z0-9#]+;`)
	horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	anySpace        = regexp.MustCompile(`\s+`)
	multiNewlines   = regexp.MustCompile(`\n{3,}`)
	multiBang       = regexp.MustCompile(`!{2,}`)
	multiQuestion   = regexp.MustCompile(`\?{2,}`)
	multiDots       = regexp.MustCompile(`\.{3,}`)
)

// Elements removed with their content.
const droppedElements = "script, style, noscript, head, svg, iframe, template"

// Elements that start and end a line of text.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true, "tr": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "section": true, "article": true, "header": true,
	"footer": true, "dd": true, "dt": true, "dl": true, "hr": true, "body": true,
}

// Clean returns the cleaned form of raw. It never fails: empty input
// gives empty output and malformed markup is stripped best-effort.
func (c *Cleaner) Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	originalLen := len(raw)

	text := stripMarkup(raw)

	text, removed := removeBoilerplate(text)

	text = normaliseWhitespace(text)

	logger.Debug("Text cleaned: %d -> %d chars, %d boilerplate sentences removed", originalLen, len(text), removed)
	return text
}

// Normalise cleans a posting into a CleanedDocument.
func (c *Cleaner) Normalise(job domain.JobPosting) domain.CleanedDocument {
	doc := domain.CleanedDocument{JobID: job.ID, Text: c.Clean(job.RawText)}
	if job.RawText == "" {
		logger.Warn("No text found for job %s", job.ID)
	} else if doc.Text == "" {
		logger.Warn("No content remaining after cleaning for job %s", job.ID)
	}
	return doc
}

// stripMarkup turns markup into plain text with one line per block element.
// Input without any markup keeps its own line structure.
func stripMarkup(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if markupHint.MatchString(text) {
		text = markupToText(text)
	}

	// Decoded entities can reintroduce tags, e.g. "&lt;b&gt;". Only
	// tag-shaped spans go, so "<5 years" and "x < y > z" survive.
	text = html.UnescapeString(text)
	text = tagSpan.ReplaceAllString(text, " ")
	text = unterminatedTag.ReplaceAllString(text, "")
	text = leftoverEntity.ReplaceAllString(text, " ")
	return text
}

// markupToText walks the parsed DOM. Whitespace inside text nodes is
// insignificant, line breaks come only from block elements and <br>.
func markupToText(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return tagSpan.ReplaceAllString(content, "\n")
	}
	doc.Find(droppedElements).Remove()

	var b strings.Builder
	writeText(doc.Selection, &b)
	return b.String()
}

func writeText(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(_ int, n *goquery.Selection) {
		name := goquery.NodeName(n)
		switch {
		case name == "#text":
			b.WriteString(anySpace.ReplaceAllString(n.Text(), " "))
		case name == "#comment":
		case name == "br":
			b.WriteString("\n")
		case blockElements[name]:
			b.WriteString("\n")
			writeText(n, b)
			b.WriteString("\n")
		default:
			writeText(n, b)
		}
	})
}

// normaliseWhitespace collapses runs of spaces, trims every line, limits
// blank lines to one and tidies repeated punctuation.
func normaliseWhitespace(text string) string {
	text = horizontalSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = multiNewlines.ReplaceAllString(text, "\n\n")
	text = multiBang.ReplaceAllString(text, "!")
	text = multiQuestion.ReplaceAllString(text, "?")
	text = multiDots.ReplaceAllString(text, "...")
	return strings.TrimSpace(text)
}
