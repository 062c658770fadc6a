package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
)

func buildPDF(hw hardware.Description, res scoring.Result, id analyses.AnalysisID, generatedAt time.Time, advice string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle("AnalizaTuPc - Informe", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "AnalizaTuPc - Informe", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, fmt.Sprintf("Fecha: %s", generatedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Analisis: #%d", id), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Perfil principal: %s (%.1f%%)", res.MainProfile, res.MainScore), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	sectionTitle(pdf, "Sistema")
	kv(pdf, "CPU", fmt.Sprintf("%s (%d nucleos @ %.2f GHz)", hw.CPUModel, hw.Cores, hw.CPUSpeedGH))
	kv(pdf, "RAM", fmt.Sprintf("%.1f GB", hw.RAMGB))
	kv(pdf, "GPU", fmt.Sprintf("%s (%.1f GB VRAM)", hw.GPUModel, hw.GPUVRAMGB))
	kv(pdf, "Disco", hw.DiskType)
	pdf.Ln(2)

	// every profile, not just the winner; sorted so output is stable
	sectionTitle(pdf, "Puntuaciones")
	names := make([]string, 0, len(res.Scores))
	for name := range res.Scores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kv(pdf, name, fmt.Sprintf("%.1f%%", res.Scores[name]*100))
	}

	if advice != "" {
		pdf.Ln(2)
		sectionTitle(pdf, "Recomendaciones")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 4.5, advice, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
}

func kv(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(45, 5, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, value, "", "L", false)
}
