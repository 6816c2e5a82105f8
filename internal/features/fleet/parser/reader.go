package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFileType is returned for an extension outside xlsx/xls/csv.
// The upload validator normally rejects these earlier.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// maxXLSRows bounds legacy workbook reads; reports are a few hundred rows.
const maxXLSRows = 20000

// readGrid converts validated file bytes into a uniform cell grid.
func (p *Parser) readGrid(data []byte, ext string) ([][]string, error) {
	switch ext {
	case "xlsx":
		return p.readXLSX(data)
	case "xls":
		return p.readXLS(data)
	case "csv":
		return p.readCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}

func (p *Parser) readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	sheet := sheets[0]
	if p.sheet != "" {
		for _, s := range sheets {
			if s == p.sheet {
				sheet = s
				break
			}
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (p *Parser) readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls workbook: %w", err)
	}
	return wb.ReadAllCells(maxXLSRows), nil
}

func (p *Parser) readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
