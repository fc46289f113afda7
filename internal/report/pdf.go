// Package report renders workout history as a PDF document.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"

	"github.com/go-pdf/fpdf"
)

var columns = []struct {
	title string
	width float64
}{
	{"Date", 38},
	{"Mode", 24},
	{"Rounds", 18},
	{"Work", 24},
	{"Recovery", 24},
	{"Total", 24},
}

// WriteHistory renders records as an A4 report into w.
func WriteHistory(w io.Writer, records []*model.SessionRecord, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Workout History", false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Workout History")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Generated "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(12)

	if len(records) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, "No sessions recorded yet.")
		pdf.Ln(8)
		return output(pdf, w)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(226, 232, 240)
	for _, column := range columns {
		pdf.CellFormat(column.width, 8, column.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	var work, recovery, total int
	for _, record := range records {
		cells := []string{
			record.FinishedAt.Local().Format("2006-01-02 15:04"),
			string(record.Mode),
			fmt.Sprintf("%d", record.RoundsCompleted),
			duration.Format(record.WorkSeconds),
			duration.Format(record.RecoverySeconds()),
			duration.Format(record.TotalSeconds),
		}
		for index, column := range columns {
			align := "R"
			if index < 2 {
				align = "L"
			}
			pdf.CellFormat(column.width, 7, cells[index], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
		work += record.WorkSeconds
		recovery += record.RecoverySeconds()
		total += record.TotalSeconds
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Sessions: %d", len(records)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total work: %s  Total recovery: %s  Total time: %s",
		duration.Format(work), duration.Format(recovery), duration.Format(total)))
	pdf.Ln(7)
	return output(pdf, w)
}

// WriteHistoryFile renders records to path.
func WriteHistoryFile(path string, records []*model.SessionRecord, generatedAt time.Time) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteHistory(file, records, generatedAt); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
