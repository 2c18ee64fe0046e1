package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	dto "task-tracker.com/task-tracker/internal/data_models"
)

// Renderer turns a user report into a printable document.
type Renderer interface {
	RenderUserReport(data UserReportData) ([]byte, error)
}

type UserReportData struct {
	UserID      string
	UserName    string
	From        *time.Time
	To          *time.Time
	GeneratedAt time.Time
	Report      dto.UserReportResponse
}

// ReportGenerator renders with the built-in Helvetica font, so it needs no
// font files on disk.
type ReportGenerator struct {
	fontName string
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{fontName: "Helvetica"}
}

func (g *ReportGenerator) RenderUserReport(data UserReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("User performance report", false)
	pdf.SetAuthor("task-tracker", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "User Performance Report", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 7, tr(subject(data)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, periodOf(data.From, data.To), "", 1, "C", false, 0, "")
	g.hr(pdf)

	r := data.Report

	g.sectionTitle(pdf, "Tasks")
	g.kvLine(pdf, "Total tasks", fmt.Sprintf("%d", r.TaskMetrics.TotalTasks))
	g.kvLine(pdf, "Completed", fmt.Sprintf("%d", r.TaskMetrics.CompletedTasks))
	g.kvLine(pdf, "In progress", fmt.Sprintf("%d", r.TaskMetrics.InProgressTasks))
	g.kvLine(pdf, "Avg. completion", fmt.Sprintf("%.1f h", r.TaskMetrics.AverageCompletionTime))
	g.kvLine(pdf, "On-time delivery", fmt.Sprintf("%.1f%%", r.TaskMetrics.OnTimeDelivery))
	g.hr(pdf)

	g.sectionTitle(pdf, "Productivity")
	g.kvLine(pdf, "Story points", fmt.Sprintf("%d", r.ProductivityMetrics.TotalStoryPoints))
	g.kvLine(pdf, "Points completed", fmt.Sprintf("%d", r.ProductivityMetrics.StoryPointsCompleted))
	g.kvLine(pdf, "Avg. points/task", fmt.Sprintf("%.1f", r.ProductivityMetrics.AverageStoryPointsPerTask))
	g.kvLine(pdf, "Efficiency", fmt.Sprintf("%.1f%%", r.ProductivityMetrics.Efficiency))
	g.hr(pdf)

	g.sectionTitle(pdf, "Timeline")
	g.kvLine(pdf, "Completed on time", fmt.Sprintf("%d", r.TimelineMetrics.TasksCompletedOnTime))
	g.kvLine(pdf, "Delayed", fmt.Sprintf("%d", r.TimelineMetrics.TasksDelayed))
	g.kvLine(pdf, "Avg. delay", fmt.Sprintf("%.1f days", r.TimelineMetrics.AverageDelay))
	g.hr(pdf)

	g.sectionTitle(pdf, "Quality")
	g.kvLine(pdf, "Needing revision", fmt.Sprintf("%d", r.QualityMetrics.TasksNeedingRevision))
	g.kvLine(pdf, "First-time accept.", fmt.Sprintf("%.1f%%", r.QualityMetrics.FirstTimeAcceptanceRate))

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "I", 9)
	pdf.CellFormat(0, 6, "Generated "+data.GeneratedAt.UTC().Format(time.RFC1123), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render user report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, s, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(55, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 3)
}

func subject(data UserReportData) string {
	if data.UserName == "" {
		return "User " + data.UserID
	}
	return fmt.Sprintf("%s (%s)", data.UserName, data.UserID)
}

func periodOf(from, to *time.Time) string {
	if from == nil || to == nil {
		return "All time"
	}
	return fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
}
