package core

// workbook.go decodes spreadsheet containers into a plain cell grid.
//
// The container is picked from the buffer's signature, not the file name:
// OLE2 compound files (legacy .xls, BIFF) go to extrame/xls, everything
// else is handed to excelize, which rejects non-OOXML input with an error.

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// workbook is the read-only view the tabular parser needs.
type workbook interface {
	SheetCount() int
	// FirstSheet returns the first sheet as rows of cell text.
	FirstSheet() ([][]string, error)
	Close() error
}

// openWorkbook decodes data as .xlsx or .xls. Decoder panics are
// returned as errors.
func openWorkbook(data []byte) (wb workbook, err error) {
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("decoder failure: %v", r)
		}
	}()
	if bytes.HasPrefix(data, oleSignature) {
		x, err := openXLS(data)
		if err != nil {
			return nil, err
		}
		return x, nil
	}
	x, err := openXLSX(data)
	if err != nil {
		return nil, err
	}
	return x, nil
}

// readGrid decodes data and returns the first sheet's grid.
func readGrid(data []byte) (rows [][]string, err error) {
	wb, err := openWorkbook(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer wb.Close()

	if wb.SheetCount() == 0 {
		return nil, ErrNoSheet
	}

	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("%w: decoder failure: %v", ErrUnreadableWorkbook, r)
		}
	}()
	rows, err = wb.FirstSheet()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	return rows, nil
}

type xlsxWorkbook struct {
	f *excelize.File
}

func openXLSX(data []byte) (*xlsxWorkbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{f: f}, nil
}

func (w *xlsxWorkbook) SheetCount() int {
	return len(w.f.GetSheetList())
}

func (w *xlsxWorkbook) FirstSheet() ([][]string, error) {
	sheets := w.f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	return w.f.GetRows(sheets[0])
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}

type xlsWorkbook struct {
	wb *xls.WorkBook
}

func openXLS(data []byte) (*xlsWorkbook, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	return &xlsWorkbook{wb: wb}, nil
}

func (w *xlsWorkbook) SheetCount() int {
	return w.wb.NumSheets()
}

func (w *xlsWorkbook) FirstSheet() ([][]string, error) {
	sheet := w.wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("first sheet is unreadable")
	}

	// MaxRow is the last row index, not a count.
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		last := row.LastCol()
		cells := make([]string, 0, last)
		for c := 0; c < last; c++ {
			if c < row.FirstCol() {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// sheetRow returns row i, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences missing rows.
func sheetRow(s *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return s.Row(i)
}

func (w *xlsWorkbook) Close() error {
	return nil
}
