package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry and rhythm, in millimetres on A4 portrait. Font sizes are
// points.
const (
	pdfMargin       = 20.0
	bannerHeight    = 50.0
	bannerTextY     = 35.0
	contentStartY   = 70.0
	pageTopY        = 30.0
	sectionReserve  = 40.0 // min space required before starting a section
	lineReserve     = 20.0 // min space required before writing a line
	headingAdvance  = 15.0
	lineAdvance     = 7.0
	itemGap         = 5.0
	sectionGap      = 10.0
	titleFontSize   = 24.0
	headingFontSize = 16.0
	bodyFontSize    = 11.0
	footerFontSize  = 9.0
	footerY         = 10.0
)

// RenderPDF lays out the sections as a paginated fixed-layout document.
// Identical input produces byte-identical output: the embedded creation
// date is pinned.
func RenderPDF(appName, title string, sections []Section) ([]byte, error) {
	doc := buildPDF(appName, title, sections)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("encoding pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPDF(appName, title string, sections []Section) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	pageWidth, pageHeight := pdf.GetPageSize()
	maxWidth := pageWidth - 2*pdfMargin

	// Every page gets a centered "app | Page i / N" footer; {nb} is
	// replaced with the final page count on output.
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", footerFontSize)
		pdf.SetTextColor(148, 163, 184)
		pdf.SetXY(0, pageHeight-footerY-4)
		pdf.CellFormat(pageWidth, 8, fmt.Sprintf("%s | Page %d / {nb}", appName, pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Full-bleed banner with the uppercased title, first page only.
	pdf.SetFillColor(37, 99, 235)
	pdf.Rect(0, 0, pageWidth, bannerHeight, "F")
	pdf.SetFont("Helvetica", "B", titleFontSize)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(pdfMargin, bannerTextY, strings.ToUpper(title))

	y := contentStartY
	for _, sec := range sections {
		if y > pageHeight-sectionReserve {
			pdf.AddPage()
			y = pageTopY
		}
		pdf.SetFont("Helvetica", "B", headingFontSize)
		pdf.SetTextColor(30, 41, 59)
		pdf.Text(pdfMargin, y, sec.Heading)
		pdf.SetDrawColor(226, 232, 240)
		pdf.Line(pdfMargin, y+2, pageWidth-pdfMargin, y+2)
		y += headingAdvance

		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.SetTextColor(71, 85, 105)
		for _, item := range sec.Body {
			for _, line := range wrapItem(pdf, item, maxWidth) {
				if y > pageHeight-lineReserve {
					pdf.AddPage()
					y = pageTopY
					pdf.SetFont("Helvetica", "", bodyFontSize)
					pdf.SetTextColor(71, 85, 105)
				}
				pdf.Text(pdfMargin, y, line)
				y += lineAdvance
			}
			y += itemGap
		}
		y += sectionGap
	}

	return pdf
}

// wrapItem wraps a body item to the writable width, honoring embedded
// newlines.
func wrapItem(pdf *fpdf.Fpdf, item string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(item, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, pdf.SplitText(para, maxWidth)...)
	}
	return lines
}
