package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheetName = "價目表"

var header = []any{"類別", "規格", "適用", "價格"}

// LoadXLSX builds a catalog from the first sheet of a workbook with one row
// per size: category, size, coverage, price. The header row is skipped.
func LoadXLSX(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("catalog: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("catalog: read rows: %w", err)
	}

	var order []string
	byCat := map[string]*Specs{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cells := make([]string, 4)
		for j := 0; j < len(row) && j < 4; j++ {
			cells[j] = strings.TrimSpace(row[j])
		}
		if cells[0] == "" && cells[1] == "" {
			continue
		}
		if cells[0] == "" || cells[1] == "" {
			return nil, fmt.Errorf("catalog: row %d: category and size are required", i+1)
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(cells[3], ",", ""), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("catalog: row %d: invalid price %q", i+1, cells[3])
		}
		s, ok := byCat[cells[0]]
		if !ok {
			s = &Specs{}
			byCat[cells[0]] = s
			order = append(order, cells[0])
		}
		s.Sizes = append(s.Sizes, cells[1])
		s.Coverage = append(s.Coverage, cells[2])
		s.BasePrices = append(s.BasePrices, price)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("catalog: workbook has no price rows")
	}

	entries := make([]Entry, 0, len(order))
	for _, name := range order {
		entries = append(entries, Entry{Category: name, Specs: *byCat[name]})
	}
	return New(entries...)
}

// WriteXLSX writes the catalog in the layout LoadXLSX reads.
func (c *Catalog) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	row := 2
	for _, e := range c.Entries() {
		for i := range e.Specs.Sizes {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			vals := []any{e.Category, e.Specs.Sizes[i], e.Specs.Coverage[i], e.Specs.BasePrices[i]}
			if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
				return err
			}
			row++
		}
	}
	_, err := f.WriteTo(w)
	return err
}
