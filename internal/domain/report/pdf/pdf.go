// Package pdf renders assembled reports to PDF with go-pdf/fpdf. Layout
// is A4 landscape with a company header, a summary band, a shrink-to-fit
// table and the edit log at the bottom.
package pdf

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"github.com/taxirapport/taxirapport/internal/domain/report"
	"github.com/taxirapport/taxirapport/internal/domain/settings"
	"github.com/taxirapport/taxirapport/pkg/format"
)

const (
	headerFontSize = 13.0
	bodyFontSize   = 11.0
	minTableFont   = 5.0
)

// Renderer writes salary and shift reports as PDF documents.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDoc() *doc {
	p := fpdf.New("L", "mm", "A4", "")
	p.SetAutoPageBreak(true, 15)
	p.AddPage()
	p.SetFont("Helvetica", "", bodyFontSize)
	return &doc{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

// RenderLonn writes the salary report.
func (r *Renderer) RenderLonn(w io.Writer, rep *report.LonnReport) error {
	d := newDoc()
	d.header(rep.Company, rep.DepositLine)

	d.pdf.SetFont("Helvetica", "B", headerFontSize)
	info := fmt.Sprintf("Lønn - Sjåfør: %s (%s)     År: %d     Måned: %s",
		rep.Driver.Name, rep.Driver.ID, rep.Period.Year, rep.Period.MonthName())
	d.pdf.CellFormat(0, 11, d.tr(info), "", 1, "L", false, 0, "")
	d.pdf.Ln(1)

	d.pdf.SetFont("Helvetica", "", 12)
	d.pdf.MultiCell(0, 8, d.tr(rep.SummaryLine()), "", "L", false)
	d.pdf.Ln(2)

	d.table(rep.Table)

	if len(rep.Edits) > 0 {
		d.pdf.Ln(5)
		d.pdf.SetFont("Helvetica", "B", bodyFontSize)
		d.pdf.CellFormat(0, 8, d.tr("Endringer (kontant):"), "", 1, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "", bodyFontSize)
		for _, e := range rep.Edits {
			line := fmt.Sprintf("Skiftnr %s, Løyve %s, %s kr", e.Shift, e.License, format.Number(e.Amount))
			if e.Note != "" {
				line += fmt.Sprintf(" (%s)", e.Note)
			}
			d.pdf.CellFormat(0, 7, d.tr(line), "", 1, "L", false, 0, "")
		}
	}

	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("could not write salary report PDF: %w", err)
	}
	r.logger.Info("salary report rendered",
		slog.String("driver", rep.Driver.ID),
		slog.Int("rows", len(rep.Table.Rows)),
	)
	return nil
}

// RenderSkift writes the shift report.
func (r *Renderer) RenderSkift(w io.Writer, rep *report.SkiftReport) error {
	d := newDoc()
	d.header(rep.Company, "")

	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.SetFillColor(236, 240, 246)
	d.pdf.CellFormat(0, 12, d.tr(rep.SummaryLine()), "", 1, "L", true, 0, "")
	d.pdf.Ln(2)

	d.pdf.SetFont("Helvetica", "", bodyFontSize)
	info := fmt.Sprintf("År: %d     Måned: %s     Løyve: %s", rep.Period.Year, rep.Period.MonthName(), rep.License)
	if rep.HasShiftRange {
		info += fmt.Sprintf("     Skiftnr: %d - %d", rep.FirstShift, rep.LastShift)
	}
	d.pdf.CellFormat(0, 10, d.tr(info), "", 1, "L", false, 0, "")
	d.pdf.Ln(2)

	d.table(rep.Table)

	if len(rep.Edits) > 0 {
		d.pdf.Ln(5)
		d.pdf.SetFont("Helvetica", "B", bodyFontSize)
		d.pdf.CellFormat(0, 8, d.tr("Endringslogg:"), "", 1, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "", bodyFontSize)
		for _, e := range rep.Edits {
			sign := ""
			if e.Amount >= 0 {
				sign = "+"
			}
			line := fmt.Sprintf("[%s] Skiftnr %s / Løyve %s: kontant %s%s kr",
				e.Timestamp, e.Shift, e.License, sign, format.Number(e.Amount))
			if e.Note != "" {
				line += fmt.Sprintf(" Notat: %s", e.Note)
			}
			d.pdf.MultiCell(0, 8, d.tr(line), "", "L", false)
		}
	}

	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("could not write shift report PDF: %w", err)
	}
	r.logger.Info("shift report rendered",
		slog.String("loyve", rep.License),
		slog.Int("rows", len(rep.Table.Rows)),
	)
	return nil
}

// header prints the company block top left, a grey separator line, and an
// optional highlighted instruction top right.
func (d *doc) header(company settings.CompanyInfo, rightLine string) {
	name, orgNumber, address := company.Name, company.OrgNumber, company.Address
	left, top, right, _ := d.pdf.GetMargins()
	pageWidth, _ := d.pdf.GetPageSize()

	d.pdf.SetXY(left, top)
	d.pdf.SetFont("Helvetica", "B", headerFontSize)
	if name != "" {
		d.pdf.CellFormat(100, 7, d.tr(name), "", 1, "L", false, 0, "")
	}
	d.pdf.SetFont("Helvetica", "", bodyFontSize)
	if orgNumber != "" {
		d.pdf.CellFormat(100, 6, d.tr("Org.nr: "+orgNumber), "", 1, "L", false, 0, "")
	}
	if address != "" {
		d.pdf.CellFormat(100, 6, d.tr(address), "", 1, "L", false, 0, "")
	}
	lineY := d.pdf.GetY() + 2

	d.pdf.SetDrawColor(200, 200, 200)
	d.pdf.SetLineWidth(0.4)
	d.pdf.Line(left, lineY, pageWidth-right, lineY)
	d.pdf.SetDrawColor(0, 0, 0)

	if rightLine != "" {
		d.pdf.SetFont("Helvetica", "", bodyFontSize)
		text := d.tr(rightLine)
		textWidth := d.pdf.GetStringWidth(text)
		d.pdf.SetXY(pageWidth-right-textWidth, top)
		d.pdf.SetTextColor(0, 60, 120)
		d.pdf.CellFormat(textWidth, 7, text, "", 0, "R", false, 0, "")
		d.pdf.SetTextColor(0, 0, 0)
	}
	d.pdf.SetXY(left, lineY+5)
	d.pdf.Ln(2)
}

// table prints the formatted table with equal column widths, shrinking the
// font until the widest cell of every column fits.
func (d *doc) table(t *report.Table) {
	if len(t.Columns) == 0 {
		return
	}
	left, _, right, _ := d.pdf.GetMargins()
	pageWidth, _ := d.pdf.GetPageSize()
	colWidth := (pageWidth - left - right) / float64(len(t.Columns))

	fontSize := d.fitFontSize(t, colWidth)

	d.pdf.SetFont("Helvetica", "B", fontSize)
	for _, col := range t.Columns {
		d.pdf.CellFormat(colWidth, 10, d.tr(col), "1", 0, "C", false, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", fontSize)
	for _, row := range t.Rows {
		for i, cell := range row {
			align := "C"
			if t.Numeric[i] {
				align = "R"
			}
			d.pdf.CellFormat(colWidth, 8, d.tr(cell), "1", 0, align, false, 0, "")
		}
		d.pdf.Ln(-1)
	}

	if t.Totals != nil {
		d.pdf.SetFont("Helvetica", "B", fontSize)
		for _, total := range t.Totals {
			d.pdf.CellFormat(colWidth, 8, d.tr(total), "1", 0, "R", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func (d *doc) fitFontSize(t *report.Table, colWidth float64) float64 {
	for size := bodyFontSize; size > minTableFont; size-- {
		d.pdf.SetFont("Helvetica", "B", size)
		if d.columnsFit(t, colWidth) {
			return size
		}
	}
	return minTableFont
}

func (d *doc) columnsFit(t *report.Table, colWidth float64) bool {
	for i, col := range t.Columns {
		widest := d.pdf.GetStringWidth(d.tr(col))
		for _, row := range t.Rows {
			if w := d.pdf.GetStringWidth(d.tr(row[i])); w > widest {
				widest = w
			}
		}
		if widest+1.5 > colWidth {
			return false
		}
	}
	return true
}
