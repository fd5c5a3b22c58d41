package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

// headerTranslations troca os rótulos internos pelos títulos exibidos na
// tabela, como no frontend original.
var headerTranslations = map[string]string{
	"Grouped Date":                 "Data Agrupada",
	"Percentual Despesa":           "Percentual de Despesa",
	"Pedidos recebidos":            "Pedidos Recebidos",
	"Recebimento médio por pedido": "Recebimento Médio por Pedido",
}

func translateHeader(header string) string {
	if t, ok := headerTranslations[header]; ok {
		return t
	}
	return header
}

// larguras por coluna em mm, somando a área útil de um A4 paisagem
var pdfColumnWidths = []float64{32, 40, 40, 40, 42, 30, 53}

// BuildResultPDF renders the processed table as a PDF, the server-side
// counterpart of the original table image export.
func BuildResultPDF(rows []domain.OutputRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, tr("Dados Processados"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 9)
	for i, name := range domain.OutputColumns() {
		pdf.CellFormat(pdfColumnWidths[i], 7, tr(translateHeader(name)), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		cells := []string{
			row.GroupedDate,
			row.Renda,
			row.Despesa,
			row.MontanteFixo,
			row.PercentualDespesa,
			fmt.Sprintf("%d", row.PedidosRecebidos),
			row.RecebimentoMedio,
		}
		for i, cell := range cells {
			align := "R"
			if i == 0 {
				align = "C"
			}
			pdf.CellFormat(pdfColumnWidths[i], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF final: %w", err)
	}
	return buf.Bytes(), nil
}
