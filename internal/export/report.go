// Package export renders a project for people outside the app: an Excel
// status report and a QR code pointing at the client portal.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetOverview = "Overview"
	SheetModules  = "Modules"
	SheetTasks    = "Tasks"
	SheetTimeline = "Timeline"
)

const timestampFormat = "2006-01-02 15:04"

var (
	moduleHeaders   = []any{"Module", "Status", "Owner", "Deadline", "Estimated Hours", "Tasks Done", "Tasks Total", "Description"}
	taskHeaders     = []any{"Module", "Task", "Status"}
	timelineHeaders = []any{"When", "Actor", "Event"}
)

// Workbook builds the report for p. The caller owns the returned file and
// must Close it.
func Workbook(p *domain.Project) (*excelize.File, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	b := &builder{f: f, header: header}
	b.overview(p)
	b.modules(p)
	b.tasks(p)
	b.timeline(p)
	if b.err != nil {
		f.Close()
		return nil, b.err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetOverview); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// WriteReport streams the xlsx report for p to w.
func WriteReport(w io.Writer, p *domain.Project) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// SaveReport writes the report to path, creating parent directories.
func SaveReport(path string, p *domain.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.IOFailure("creating export directory", err)
	}
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return domain.IOFailure("saving report "+filepath.Base(path), err)
	}
	return nil
}

// ReportFileName suggests a file name for p's report.
func ReportFileName(p *domain.Project, at time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, strings.TrimSpace(p.Name))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = p.ID
	}
	return fmt.Sprintf("%s_%s.xlsx", slug, at.Format("20060102"))
}

// builder keeps the first error so sheet code reads top to bottom.
type builder struct {
	f      *excelize.File
	header int
	err    error
}

func (b *builder) sheet(name string, headers []any) {
	if b.err != nil {
		return
	}
	if _, err := b.f.NewSheet(name); err != nil {
		b.err = fmt.Errorf("creating sheet %s: %w", name, err)
		return
	}
	if headers != nil {
		b.row(name, 1, headers)
		if b.err == nil {
			b.err = b.f.SetRowStyle(name, 1, 1, b.header)
		}
	}
}

func (b *builder) row(sheet string, n int, values []any) {
	if b.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		b.err = err
		return
	}
	if err := b.f.SetSheetRow(sheet, cell, &values); err != nil {
		b.err = fmt.Errorf("writing %s row %d: %w", sheet, n, err)
	}
}

func (b *builder) overview(p *domain.Project) {
	b.sheet(SheetOverview, nil)
	done, total := p.Progress()
	rows := [][]any{
		{"Project", p.Name},
		{"Status", domain.Label(p.Status)},
		{"Start Date", p.StartDate.String()},
		{"Deadline", p.Deadline.String()},
		{"Modules Completed", fmt.Sprintf("%d / %d", done, total)},
		{"Pending Change Requests", p.PendingChangeRequests()},
		{"Description", p.Description},
	}
	for i, r := range rows {
		b.row(SheetOverview, i+1, r)
	}
	if b.err == nil {
		b.err = b.f.SetColWidth(SheetOverview, "A", "A", 26)
	}
	if b.err == nil {
		b.err = b.f.SetColWidth(SheetOverview, "B", "B", 60)
	}
}

func (b *builder) modules(p *domain.Project) {
	b.sheet(SheetModules, moduleHeaders)
	for i, m := range p.Modules {
		partsDone := 0
		for _, part := range m.Parts {
			if part.Status == domain.PartCompleted {
				partsDone++
			}
		}
		b.row(SheetModules, i+2, []any{
			m.Name, domain.Label(m.Status), m.Owner, m.Deadline.String(),
			m.EstimatedHours, partsDone, len(m.Parts), m.Description,
		})
	}
	if b.err == nil {
		b.err = b.f.SetColWidth(SheetModules, "A", "H", 18)
	}
}

func (b *builder) tasks(p *domain.Project) {
	b.sheet(SheetTasks, taskHeaders)
	n := 2
	for _, m := range p.Modules {
		for _, part := range m.Parts {
			b.row(SheetTasks, n, []any{m.Name, part.Name, domain.Label(part.Status)})
			n++
		}
	}
}

func (b *builder) timeline(p *domain.Project) {
	b.sheet(SheetTimeline, timelineHeaders)
	for i, ev := range p.Timeline {
		b.row(SheetTimeline, i+2, []any{ev.At.UTC().Format(timestampFormat), domain.Label(ev.Actor), ev.Description})
	}
	if b.err == nil {
		b.err = b.f.SetColWidth(SheetTimeline, "C", "C", 70)
	}
}
