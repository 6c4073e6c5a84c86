package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"casebackend/internal/domain/models"
	"casebackend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// CaseSheetService renders a printable sheet for one case.
type CaseSheetService struct {
	Store     CaseStore
	RequestID string
	Now       func() time.Time
}

// Generate loads the case and returns the PDF bytes with a download filename.
func (s CaseSheetService) Generate(ctx context.Context, id int64) ([]byte, string, error) {
	c, err := CaseService{Store: s.Store}.Retrieve(ctx, id)
	if err != nil {
		return nil, "", err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	utils.LogEvent(s.RequestID, "docs", "case_sheet", fmt.Sprintf("case_id=%d", id))
	return buildCaseSheetPDF(c, now())
}

// Core fonts are cp1252; text outside it is replaced during translation.
func buildCaseSheetPDF(c models.Case, printedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Case "+c.Number, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "CASE SHEET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Number     : %s", safe(c.Number, "-")),
		fmt.Sprintf("Type       : %s", safe(c.TypeName, "-")),
		fmt.Sprintf("Region     : %s", safe(c.RegionName, "-")),
		fmt.Sprintf("Location   : %s", safe(c.Location, "-")),
		fmt.Sprintf("State      : %s", safe(c.State, "-")),
		fmt.Sprintf("Reported   : %s", c.CreatedAt.Format("2006-01-02 15:04")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, tr(l))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 7, tr(safe(c.Title, "-")), "", "", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(safe(c.Content, "-")), "", "", false)

	if strings.TrimSpace(c.DisapproveInfo) != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, tr("Disapproved: "+c.DisapproveInfo), "", "", false)
	}

	if len(c.Arranges) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Arranges")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for i, a := range c.Arranges {
			when := "-"
			if a.ArrangeTime != nil {
				when = a.ArrangeTime.Format("2006-01-02 15:04")
			}
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d) %s [%s]", i+1, safe(a.Title, "-"), when)), "", "", false)
			if strings.TrimSpace(a.Content) != "" {
				pdf.MultiCell(0, 6, tr("   "+a.Content), "", "", false)
			}
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Printed "+printedAt.Format("2006-01-02 15:04"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("CASE_%s.pdf", safeFilenamePart(c.Number)), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
