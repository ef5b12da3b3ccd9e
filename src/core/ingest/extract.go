package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFileType is returned for anything other than PDF and HTML.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// FileType tags the raw document format.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeHTML FileType = "html"
)

// FileTypeFromName resolves the file type from a file name extension.
func FileTypeFromName(name string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FileTypePDF, nil
	case ".html", ".htm":
		return FileTypeHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, name)
	}
}

// ExtractText pulls plain text out of raw document bytes.
func ExtractText(data []byte, fileType FileType) (string, error) {
	switch fileType {
	case FileTypePDF:
		return extractPDF(data)
	case FileTypeHTML:
		return extractHTML(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, fileType)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// unreadable page, keep the rest of the document
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	return doc.Text(), nil
}
