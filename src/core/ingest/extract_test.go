package ingest_test

import (
	"errors"
	"strings"
	"testing"

	"washrag/src/core/ingest"
)

func TestFileTypeFromName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     ingest.FileType
		wantErr  bool
	}{
		{name: "pdf", filename: "report.pdf", want: ingest.FileTypePDF},
		{name: "pdf uppercase", filename: "REPORT.PDF", want: ingest.FileTypePDF},
		{name: "html", filename: "page.html", want: ingest.FileTypeHTML},
		{name: "htm", filename: "page.htm", want: ingest.FileTypeHTML},
		{name: "with directory", filename: "data/reports/report.pdf", want: ingest.FileTypePDF},
		{name: "docx unsupported", filename: "report.docx", wantErr: true},
		{name: "no extension", filename: "report", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ingest.FileTypeFromName(tt.filename)
			if tt.wantErr {
				if !errors.Is(err, ingest.ErrUnsupportedFileType) {
					t.Errorf("FileTypeFromName(%q) error = %v, want ErrUnsupportedFileType", tt.filename, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FileTypeFromName(%q) error = %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("FileTypeFromName(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestExtractTextHTML(t *testing.T) {
	html := `<html><head>
<style>body { color: red; }</style>
<script>console.log("tracking");</script>
</head><body>
<h1>Water Report</h1>
<p>Access improved in ২০২৩.</p>
<noscript>enable javascript</noscript>
</body></html>`

	got, err := ingest.ExtractText([]byte(html), ingest.FileTypeHTML)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}

	if !strings.Contains(got, "Water Report") {
		t.Errorf("extracted text missing heading: %q", got)
	}
	if !strings.Contains(got, "Access improved in ২০২৩.") {
		t.Errorf("extracted text missing paragraph: %q", got)
	}
	for _, leaked := range []string{"color: red", "console.log", "enable javascript"} {
		if strings.Contains(got, leaked) {
			t.Errorf("extracted text contains non-content %q: %q", leaked, got)
		}
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ingest.ExtractText([]byte("data"), ingest.FileType("docx"))
	if !errors.Is(err, ingest.ErrUnsupportedFileType) {
		t.Errorf("ExtractText() error = %v, want ErrUnsupportedFileType", err)
	}
}
