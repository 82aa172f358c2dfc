package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/fabtrack/models"
	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportSummary godoc
// @Summary Download the project summary as xlsx
// @Tags summary
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Project ID"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /api/v1/projects/{id}/summary/export [get]
func (h *Handler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	projectID, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := h.svc.Summaries.BuildSummary(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	f, err := summaryWorkbook(summary, time.Now())
	if err != nil {
		h.writeError(w, r, fmt.Errorf("failed to generate Excel file: %w", err))
		return
	}
	h.sendWorkbook(w, r, f, summary.Project.EnquiryID+"_summary")
}

// ExportMeasurements godoc
// @Summary Download the measurement sheet as xlsx
// @Tags measurements
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Project ID"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /api/v1/projects/{id}/measurements/export [get]
func (h *Handler) ExportMeasurements(w http.ResponseWriter, r *http.Request) {
	projectID, err := utils.ParseID(r, "id")
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.svc.Projects.Get(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	entries, err := h.svc.Measurements.ListEntries(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	totals, err := h.svc.Measurements.AreaByGauge(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	f, err := measurementWorkbook(project, entries, records.SortedGaugeAreas(totals), time.Now())
	if err != nil {
		h.writeError(w, r, fmt.Errorf("failed to generate Excel file: %w", err))
		return
	}
	h.sendWorkbook(w, r, f, project.EnquiryID+"_measurements")
}

func (h *Handler) sendWorkbook(w http.ResponseWriter, r *http.Request, f *excelize.File, name string) {
	defer f.Close()
	var buffer bytes.Buffer
	if err := f.Write(&buffer); err != nil {
		h.writeError(w, r, fmt.Errorf("failed to write Excel file: %w", err))
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", utils.SanitizeFilename(name), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

type workbookStyles struct {
	title  int
	header int
	data   int
	total  int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders("000000"),
	}); err != nil {
		return s, err
	}
	if s.data, err = f.NewStyle(&excelize.Style{Border: borders("CCCCCC")}); err != nil {
		return s, err
	}
	s.total, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E7E6E6"}, Pattern: 1},
	})
	return s, err
}

func borders(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}

// writeRow writes values starting at column 1 of row and applies style.
func writeRow(f *excelize.File, sheet string, row int, style int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func dateCell(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// newSheet creates a workbook with a single sheet named name.
func newSheet(name string) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(name)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func summaryWorkbook(s *records.ProjectSummary, generated time.Time) (*excelize.File, error) {
	const sheet = "Summary"
	f, err := newSheet(sheet)
	if err != nil {
		return nil, err
	}
	styles, err := newWorkbookStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	p := s.Project
	f.SetCellValue(sheet, "A1", "Project Summary "+p.EnquiryID)
	f.SetCellStyle(sheet, "A1", "A1", styles.title)
	f.SetRowHeight(sheet, 1, 30)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04:05")))
	f.SetColWidth(sheet, "A", "B", 24)

	row := 4
	details := [][2]any{
		{"Enquiry ID", p.EnquiryID},
		{"Client", p.Client},
		{"Quotation Ref", p.QuotationRef},
		{"Start Date", dateCell(p.StartDate)},
		{"End Date", dateCell(p.EndDate)},
		{"Location", p.Location},
		{"Incharge", p.Incharge},
		{"GST Number", p.GSTNumber},
		{"Design Status", string(p.DesignStatus)},
	}
	for _, d := range details {
		if err := writeRow(f, sheet, row, styles.data, d[0], d[1]); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	row++
	if err := writeRow(f, sheet, row, styles.header, "Gauge", "Area (m²)"); err != nil {
		f.Close()
		return nil, err
	}
	row++
	for _, g := range s.Gauges {
		if err := writeRow(f, sheet, row, styles.data, g.Gauge, g.Area); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	if err := writeRow(f, sheet, row, styles.total, "Total", s.TotalArea); err != nil {
		f.Close()
		return nil, err
	}

	row += 2
	if err := writeRow(f, sheet, row, styles.header, "Stage", "Progress (%)"); err != nil {
		f.Close()
		return nil, err
	}
	row++
	stages := [][2]any{
		{"Sheet Cutting", s.Stages.SheetCutting},
		{"Plasma Fabrication", s.Stages.PlasmaFabrication},
		{"Boxing Assembly", s.Stages.BoxingAssembly},
		{"Quality Checking", s.Stages.QualityChecking},
		{"Dispatch", s.Stages.Dispatch},
	}
	for _, st := range stages {
		if err := writeRow(f, sheet, row, styles.data, st[0], st[1]); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	if err := writeRow(f, sheet, row, styles.total, "Overall", s.OverallProgress); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

var measurementHeaders = []any{"Duct No", "Duct Type", "Length (mm)", "Width (mm)", "Height (mm)", "Quantity", "Gauge", "Area (m²)"}

func measurementWorkbook(p *models.Project, entries []models.MeasurementSheetEntry, totals []records.GaugeArea, generated time.Time) (*excelize.File, error) {
	const sheet = "Measurements"
	f, err := newSheet(sheet)
	if err != nil {
		return nil, err
	}
	styles, err := newWorkbookStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Measurement Sheet %s (%s)", p.EnquiryID, p.Client))
	f.SetCellStyle(sheet, "A1", "A1", styles.title)
	f.SetRowHeight(sheet, 1, 30)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04:05")))

	if err := writeRow(f, sheet, 4, styles.header, measurementHeaders...); err != nil {
		f.Close()
		return nil, err
	}
	f.SetColWidth(sheet, "A", utils.ColumnName(len(measurementHeaders)), 16)

	row := 5
	for _, e := range entries {
		if err := writeRow(f, sheet, row, styles.data,
			e.DuctNo, e.DuctType, e.Length, e.Width, e.Height, e.Quantity, e.Gauge, e.Area); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	row++
	if err := writeRow(f, sheet, row, styles.header, "Gauge", "Area (m²)"); err != nil {
		f.Close()
		return nil, err
	}
	row++
	for _, g := range totals {
		if err := writeRow(f, sheet, row, styles.total, g.Gauge, g.Area); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	return f, nil
}
