package service

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/model"
)

// CVExportService renders a user's career profile as a PDF CV.
type CVExportService interface {
	Render(user *model.User, profile *dto.ProfileResponse) ([]byte, error)
}

type cvExportService struct{}

func NewCVExportService() CVExportService {
	return &cvExportService{}
}

const (
	cvFont      = "Helvetica"
	cvLineH     = 6.0
	cvBarWidth  = 90.0
	cvBarHeight = 4.0
)

func (s *cvExportService) Render(user *model.User, profile *dto.ProfileResponse) ([]byte, error) {
	if user == nil || profile == nil {
		return nil, fmt.Errorf("%w: user and profile are required", ErrValidation)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Curriculum Vitae - "+user.FullName, true)
	pdf.SetAuthor(user.FullName, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header.
	pdf.SetFont(cvFont, "B", 20)
	pdf.MultiCell(0, 10, tr(user.FullName), "", "L", false)
	info := profile.PersonalInfo
	pdf.SetFont(cvFont, "", 11)
	if info.Headline != "" {
		pdf.MultiCell(0, cvLineH, tr(info.Headline), "", "L", false)
	}
	contact := joinNonEmpty(" | ", user.Email, info.Phone, info.Location, info.Website)
	pdf.MultiCell(0, cvLineH, tr(contact), "", "L", false)
	if info.Bio != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, cvLineH, tr(info.Bio), "", "L", false)
	}

	if profile.HollandCode != "" || profile.PersonalityLabel != "" {
		section(pdf, "Personality")
		pdf.SetFont(cvFont, "", 11)
		pdf.MultiCell(0, cvLineH, tr(fmt.Sprintf("Holland code %s: %s", profile.HollandCode, profile.PersonalityLabel)), "", "L", false)
	}

	if len(profile.CompetencyPercent) > 0 {
		section(pdf, "Competencies")
		renderCompetencyBars(pdf, tr, profile.CompetencyPercent)
	}

	if len(profile.CareerSuggestions) > 0 {
		section(pdf, "Suggested careers")
		bullets(pdf, tr, profile.CareerSuggestions)
	}
	if len(profile.DevelopmentAreas) > 0 {
		section(pdf, "Development areas")
		bullets(pdf, tr, profile.DevelopmentAreas)
	}

	if len(profile.WorkHistory) > 0 {
		section(pdf, "Work history")
		for _, w := range profile.WorkHistory {
			pdf.SetFont(cvFont, "B", 11)
			pdf.MultiCell(0, cvLineH, tr(joinNonEmpty(" - ", w.Role, w.Company)), "", "L", false)
			pdf.SetFont(cvFont, "I", 10)
			if period := joinNonEmpty(" to ", w.StartDate, w.EndDate); period != "" {
				pdf.MultiCell(0, cvLineH, tr(period), "", "L", false)
			}
			if w.Description != "" {
				pdf.SetFont(cvFont, "", 10)
				pdf.MultiCell(0, cvLineH, tr(w.Description), "", "L", false)
			}
			pdf.Ln(1)
		}
	}

	goals := profile.Goals
	if goals.ShortTerm != "" || goals.LongTerm != "" {
		section(pdf, "Goals")
		pdf.SetFont(cvFont, "", 11)
		if goals.ShortTerm != "" {
			pdf.MultiCell(0, cvLineH, tr("Short term: "+goals.ShortTerm), "", "L", false)
		}
		if goals.LongTerm != "" {
			pdf.MultiCell(0, cvLineH, tr("Long term: "+goals.LongTerm), "", "L", false)
		}
	}

	if len(profile.WorkValues) > 0 {
		section(pdf, "Work values")
		pdf.SetFont(cvFont, "", 11)
		pdf.MultiCell(0, cvLineH, tr(strings.Join(profile.WorkValues, ", ")), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render cv: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont(cvFont, "B", 13)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func bullets(pdf *gofpdf.Fpdf, tr func(string) string, items []string) {
	pdf.SetFont(cvFont, "", 11)
	for _, item := range items {
		pdf.MultiCell(0, cvLineH, tr("- "+item), "", "L", false)
	}
}

func renderCompetencyBars(pdf *gofpdf.Fpdf, tr func(string) string, percent map[string]float64) {
	areas := make([]string, 0, len(percent))
	for area := range percent {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	pdf.SetFont(cvFont, "", 10)
	for _, area := range areas {
		left, _, _, _ := pdf.GetMargins()
		y := pdf.GetY()
		pdf.CellFormat(55, cvLineH, tr(area), "", 0, "L", false, 0, "")
		barX := left + 57
		barY := y + (cvLineH-cvBarHeight)/2
		pdf.SetFillColor(225, 225, 225)
		pdf.Rect(barX, barY, cvBarWidth, cvBarHeight, "F")
		pdf.SetFillColor(46, 109, 164)
		pdf.Rect(barX, barY, cvBarWidth*percent[area]/MaxScaledCompetencyScore, cvBarHeight, "F")
		pdf.SetXY(barX+cvBarWidth+3, y)
		pdf.CellFormat(20, cvLineH, fmt.Sprintf("%.0f%%", percent[area]), "", 1, "L", false, 0, "")
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
