// Package reporting renders cycle snapshots as PDF reports for
// offline distribution.
package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/airlens/airmon/internal/core/ports"
)

// PDFExporter exports venue reports to PDF format.
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportVenueReport generates a PDF from the latest cycle snapshot:
// venue summary, per-zone metric table, and the offline APs with
// their assigned disconnect causes.
func (e *PDFExporter) ExportVenueReport(snap ports.CycleSnapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, snap)
	e.addVenueSummary(pdf, snap)
	e.addZoneTable(pdf, snap)
	e.addOfflineAPs(pdf, snap)
	e.addFooter(pdf, snap)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the report header.
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, snap ports.CycleSnapshot) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, "Wireless Network Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	dateStr := fmt.Sprintf("Collected: %s UTC", snap.CollectedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

// addVenueSummary adds the prominent venue score box.
func (e *PDFExporter) addVenueSummary(pdf *gofpdf.Fpdf, snap ports.CycleSnapshot) {
	r, g, b := e.scoreColor(snap.Venue.AvgExperienceScore)

	pdf.SetFillColor(r, g, b)
	pdf.Rect(20, pdf.GetY(), 170, 28, "F")
	y := pdf.GetY()

	pdf.SetFont("Arial", "B", 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(25, y+4)
	pdf.CellFormat(70, 20, fmt.Sprintf("%.1f", snap.Venue.AvgExperienceScore), "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 14)
	pdf.SetXY(100, y+3)
	pdf.CellFormat(85, 10, "Experience Score", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetXY(100, y+13)
	pdf.CellFormat(85, 10, fmt.Sprintf("SLA compliance: %.1f%%", snap.Venue.SLACompliance), "", 0, "L", false, 0, "")

	pdf.SetY(y + 32)

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(60, 60, 60)
	line := fmt.Sprintf("%d zones   |   %d access points   |   %d clients",
		snap.Venue.TotalZones, snap.Venue.TotalAPs, snap.Venue.TotalClients)
	pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// addZoneTable adds the per-zone metrics table.
func (e *PDFExporter) addZoneTable(pdf *gofpdf.Fpdf, snap ports.CycleSnapshot) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Zones", "", 1, "L", false, 0, "")

	headers := []string{"Zone", "APs", "Offline", "Clients", "Avail %", "Score", "Util %"}
	widths := []float64{55, 20, 20, 22, 20, 18, 18}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 235, 245)
	pdf.SetTextColor(40, 40, 40)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, z := range snap.Zones {
		pdf.CellFormat(widths[0], 7, truncate(z.Name, 32), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", z.TotalAPs), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", z.DisconnectedAPs), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", z.Clients), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%.1f", z.APAvailability), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.1f", z.ExperienceScore), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 7, fmt.Sprintf("%.1f", z.Utilization), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

// addOfflineAPs lists offline APs with their assigned causes.
func (e *PDFExporter) addOfflineAPs(pdf *gofpdf.Fpdf, snap ports.CycleSnapshot) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Offline Access Points", "", 1, "L", false, 0, "")

	if len(snap.OfflineAPs) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 8, "All access points online.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	headers := []string{"AP", "Zone", "Model", "Code", "Cause", "Impact"}
	widths := []float64{35, 30, 20, 13, 60, 15}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(250, 230, 230)
	pdf.SetTextColor(40, 40, 40)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, ap := range snap.OfflineAPs {
		name := ap.APName
		if name == "" {
			name = ap.APMac
		}
		pdf.CellFormat(widths[0], 7, truncate(name, 22), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, truncate(ap.ZoneName, 18), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, truncate(ap.Model, 12), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", ap.CauseCode), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 7, truncate(ap.CauseDescription, 42), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.1f", ap.ImpactScore), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

// addFooter adds the page footer.
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, snap ports.CycleSnapshot) {
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	footer := fmt.Sprintf("airmon cycle %s", snap.CycleID)
	pdf.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
}

// scoreColor returns RGB color based on the experience score.
func (e *PDFExporter) scoreColor(score float64) (r, g, b int) {
	switch {
	case score >= 80:
		return 40, 167, 69 // Green
	case score >= 60:
		return 255, 149, 0 // Orange
	case score > 0:
		return 220, 53, 69 // Red
	default:
		return 108, 117, 125 // Gray, no data
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
