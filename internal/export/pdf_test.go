package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestRenderPDF(t *testing.T) {
	sections := []Section{
		NewSection("Overview", "Subject: AI", "Difficulty: Intermediate"),
		NewSection("Curriculum", "Week 1: Search\nState-space search", "Week 2: Logic\nKnowledge representation"),
	}

	data, err := RenderPDF("Ustoz Pro", "Artificial Intelligence_Syllabus", sections)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF, starts with %q", data[:8])
	}
}

func TestRenderPDF_Deterministic(t *testing.T) {
	sections := []Section{NewSection("Lecture", "Some lecture text.")}

	first, err := RenderPDF("Ustoz Pro", "Search Materials", sections)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	second, err := RenderPDF("Ustoz Pro", "Search Materials", sections)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical input produced different bytes")
	}
}

// Pagination rhythm: content starts at y=70, the heading advance leaves the
// first body line at y=85, a line break fires past y=277 and continuation
// pages restart at y=30. That gives 28 body lines on the first page and 36
// per continuation page.
func TestBuildPDF_Pagination(t *testing.T) {
	tests := []struct {
		lines     int
		wantPages int
	}{
		{1, 1},
		{28, 1},
		{29, 2},
		{64, 2},
		{65, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d lines", tt.lines), func(t *testing.T) {
			parts := make([]string, tt.lines)
			for i := range parts {
				parts[i] = fmt.Sprintf("line %d", i+1)
			}
			sections := []Section{NewSection("Body", strings.Join(parts, "\n"))}

			pdf := buildPDF("Ustoz Pro", "Pagination", sections)
			if got := pdf.PageCount(); got != tt.wantPages {
				t.Errorf("PageCount() = %d, want %d", got, tt.wantPages)
			}
		})
	}
}

func TestBuildPDF_SectionStartsNewPageWhenLow(t *testing.T) {
	// 27 lines leave y at 85+27*7+5+10 = 289, past the 257 section
	// threshold, so the next section must open page two.
	parts := make([]string, 27)
	for i := range parts {
		parts[i] = fmt.Sprintf("line %d", i+1)
	}
	sections := []Section{
		NewSection("First", strings.Join(parts, "\n")),
		NewSection("Second", "short"),
	}

	pdf := buildPDF("Ustoz Pro", "Sections", sections)
	if got := pdf.PageCount(); got != 2 {
		t.Errorf("PageCount() = %d, want 2", got)
	}
}

func TestWrapItem_EmptyLines(t *testing.T) {
	pdf := buildPDF("Ustoz Pro", "T", nil)
	pdf.SetFont("Helvetica", "", bodyFontSize)

	lines := wrapItem(pdf, "a\n\nb", 170)
	if len(lines) != 3 || lines[1] != "" {
		t.Errorf("wrapItem() = %q, want blank middle line preserved", lines)
	}
}
