// Package spreadsheet lê e escreve os arquivos que circundam o pipeline:
// relatórios de liquidação (.xlsx, .xls ou .zip de .xlsx) na entrada e a
// tabela processada (.xlsx ou .pdf) na saída.
package spreadsheet

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

// ReadRecords lê a primeira aba de cada planilha do upload e concatena as
// linhas como registros brutos. Valores permanecem como string; células
// vazias viram nil.
func ReadRecords(file io.Reader, filename string) ([]domain.RawRecord, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o arquivo enviado: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(data)
	case ".xls":
		return readXLS(data)
	case ".zip":
		return readZip(data)
	default:
		return nil, fmt.Errorf("formato de arquivo não suportado: %s", ext)
	}
}

func readXLSX(data []byte) ([]domain.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha .xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("a planilha não contém abas")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a aba %q: %w", sheets[0], err)
	}
	return rowsToRecords(rows), nil
}

func readXLS(data []byte) ([]domain.RawRecord, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		// alguns exportadores entregam xlsx com extensão .xls
		if recs, errX := readXLSX(data); errX == nil {
			return recs, nil
		}
		return nil, fmt.Errorf("erro ao abrir planilha .xls: %w", err)
	}

	if len(workbook.GetSheets()) == 0 {
		return nil, fmt.Errorf("o arquivo .xls não contém planilhas")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
	}

	var rows [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		rows = append(rows, cells)
	}
	return rowsToRecords(rows), nil
}

// readZip concatena os registros de todos os .xlsx do contêiner, em ordem de
// nome, usando a primeira aba de cada um.
func readZip(data []byte) ([]domain.RawRecord, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo zip: %w", err)
	}

	var names []string
	members := make(map[string]*zip.File)
	for _, member := range zr.File {
		if member.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(member.Name, "__MACOSX/") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(member.Name), ".xlsx") {
			continue
		}
		names = append(names, member.Name)
		members[member.Name] = member
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("o arquivo zip não contém planilhas .xlsx")
	}
	sort.Strings(names)

	var records []domain.RawRecord
	for _, name := range names {
		rc, err := members[name].Open()
		if err != nil {
			return nil, fmt.Errorf("erro ao abrir %q dentro do zip: %w", name, err)
		}
		memberData, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("erro ao ler %q dentro do zip: %w", name, err)
		}

		recs, err := readXLSX(memberData)
		if err != nil {
			return nil, fmt.Errorf("erro ao processar %q dentro do zip: %w", name, err)
		}
		records = append(records, recs...)
	}
	return records, nil
}

// rowsToRecords usa a primeira linha como cabeçalho e mapeia cada linha
// seguinte para um registro. Linhas totalmente vazias são ignoradas.
func rowsToRecords(rows [][]string) []domain.RawRecord {
	if len(rows) == 0 {
		return nil
	}
	headers := rows[0]

	var records []domain.RawRecord
	for _, row := range rows[1:] {
		rec := make(domain.RawRecord, len(headers))
		empty := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) && row[i] != "" {
				rec[header] = row[i]
				empty = false
			} else {
				rec[header] = nil
			}
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records
}
