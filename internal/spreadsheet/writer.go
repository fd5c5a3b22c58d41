package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

const resultSheet = "Processed Data"

// BuildResultXLSX serializa as linhas processadas de volta para .xlsx,
// mantendo exatamente a ordem de colunas da tabela final.
func BuildResultXLSX(rows []domain.OutputRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultSheet); err != nil {
		return nil, fmt.Errorf("erro ao preparar a planilha de saída: %w", err)
	}

	for col, name := range domain.OutputColumns() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(resultSheet, cell, name); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range row.Values() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(resultSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar .xlsx final: %w", err)
	}
	return buf.Bytes(), nil
}
