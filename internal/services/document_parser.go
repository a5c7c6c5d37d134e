package services

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var ErrUnsupportedFileType = errors.New("unsupported file type")

// DocumentParser turns an uploaded CV into plain text.
type DocumentParser interface {
	ExtractText(contentType string, data []byte) (string, error)
}

type documentParser struct{}

func NewDocumentParser() DocumentParser {
	return &documentParser{}
}

// ContentTypeFor maps a file name to one of the supported MIME types.
func ContentTypeFor(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MimePDF, nil
	case ".docx":
		return MimeDOCX, nil
	case ".txt":
		return MimeText, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(filename))
	}
}

func (p *documentParser) ExtractText(contentType string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch contentType {
	case MimeText:
		text = string(data)
	case MimePDF:
		text, err = extractPDFText(data)
	case MimeDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", fmt.Errorf("no text content found in document")
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

var (
	docxBreak = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag    = regexp.MustCompile(`<[^>]+>`)
)

// docxXMLToText strips WordprocessingML markup, keeping paragraph breaks.
func docxXMLToText(content string) string {
	content = docxBreak.ReplaceAllStringFunc(content, func(m string) string {
		if strings.HasPrefix(m, "<w:tab") {
			return " "
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleanedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
