package main

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Cover page geometry, A5 portrait in millimetres.
const (
	coverPageSize  = "A5"
	coverBorderX   = 10.0
	coverBorderY   = 10.0
	coverBorderW   = 128.0
	coverBorderH   = 190.0
	coverMargin    = 20.0
	coverTextWidth = 108.0
	coverFont      = "Times"
)

// fixed so the same book yields the same cover bytes
var coverDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// BuildCover writes a one-page front matter PDF: red border, wrapped
// centred title, subtitle below it and the source URL as a link near the
// bottom edge.
func BuildCover(title, subtitle, sourceURL, outPath string) error {
	pdf := newCoverDoc(title)
	layoutCover(pdf, title, subtitle, sourceURL)
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("cover %s: %w", outPath, err)
	}
	return nil
}

func newCoverDoc(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", coverPageSize, "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(coverDate)
	pdf.SetModificationDate(coverDate)
	pdf.SetTitle(title, true)
	pdf.SetCreator("intech-ebook-dl", false)
	return pdf
}

func layoutCover(pdf *gofpdf.Fpdf, title, subtitle, sourceURL string) {
	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// the page starts at the default 10mm top margin; the wider margins
	// only move the text column
	pdf.AddPage()
	pdf.SetMargins(coverMargin, coverMargin, coverMargin)

	pdf.SetDrawColor(255, 0, 0)
	pdf.Rect(coverBorderX, coverBorderY, coverBorderW, coverBorderH, "D")

	pdf.SetFont(coverFont, "B", 24)
	pdf.Ln(30)
	pdf.MultiCell(coverTextWidth, 11, tr(title), "", "C", false)

	if subtitle != "" {
		pdf.Ln(20)
		pdf.SetFont(coverFont, "", 16)
		pdf.MultiCell(coverTextWidth, 7, tr(subtitle), "", "C", false)
	}

	pdf.SetY(-40)
	pdf.SetFont(coverFont, "", 11)
	pdf.WriteLinkString(5, sourceURL, sourceURL)
}
