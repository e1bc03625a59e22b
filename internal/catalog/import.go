package catalog

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"costbook/internal"
)

// ParseItemsXLSX reads priced line items from a catalog workbook. The first
// row of each sheet may be a header; rows missing a code or description are
// skipped.
func ParseItemsXLSX(content []byte) ([]internal.CatalogItem, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := []internal.CatalogItem{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		codeIdx, descIdx, unitIdx, costIdx := 0, 1, 2, 3
		for i, row := range rows {
			cells := trimCells(row)
			if len(cells) == 0 {
				continue
			}
			if i == 0 {
				if c, d, u, uc, ok := inferCatalogColumns(cells); ok {
					codeIdx, descIdx, unitIdx, costIdx = c, d, u, uc
					continue
				}
			}

			item, ok := rowToItem(cells, codeIdx, descIdx, unitIdx, costIdx)
			if !ok {
				continue
			}
			out = append(out, item)
		}
	}
	return out, nil
}

// ParseItemsHTML reads items from price-book pages: any table whose header
// row names a code and description column.
func ParseItemsHTML(content []byte) ([]internal.CatalogItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	out := []internal.CatalogItem{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
		codeIdx, descIdx, unitIdx, costIdx, ok := inferCatalogColumns(headers)
		if !ok {
			return
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if item, ok := rowToItem(cells, codeIdx, descIdx, unitIdx, costIdx); ok {
				out = append(out, item)
			}
		})
	})
	return out, nil
}

// ParseItemsCSV reads code,description,unit,unit_cost records, with an
// optional header row.
func ParseItemsCSV(r io.Reader) ([]internal.CatalogItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	out := []internal.CatalogItem{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cells := trimCells(record)
		if first {
			first = false
			if _, _, _, _, ok := inferCatalogColumns(cells); ok {
				continue
			}
		}
		if item, ok := rowToItem(cells, 0, 1, 2, 3); ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func inferCatalogColumns(headers []string) (codeIdx, descIdx, unitIdx, costIdx int, ok bool) {
	norm := make([]string, 0, len(headers))
	for _, h := range headers {
		norm = append(norm, strings.ToLower(h))
	}
	codeIdx = findHeaderIndex(norm, []string{"code", "item"})
	descIdx = findHeaderIndex(norm, []string{"desc", "name", "scope"})
	unitIdx = findHeaderIndex(norm, []string{"unit", "uom"})
	costIdx = findHeaderIndex(norm, []string{"cost", "price", "rate"})
	ok = codeIdx >= 0 && descIdx >= 0
	return
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func rowToItem(cells []string, codeIdx, descIdx, unitIdx, costIdx int) (internal.CatalogItem, bool) {
	pick := func(idx int) string {
		if idx >= 0 && idx < len(cells) {
			return cells[idx]
		}
		return ""
	}

	item := internal.CatalogItem{
		Code:        pick(codeIdx),
		Description: pick(descIdx),
		Unit:        pick(unitIdx),
	}
	if item.Code == "" || item.Description == "" {
		return internal.CatalogItem{}, false
	}

	costCell := strings.NewReplacer("$", "", ",", "", " ", "").Replace(pick(costIdx))
	if costCell != "" {
		cost, err := strconv.ParseFloat(costCell, 64)
		if err != nil || cost < 0 {
			return internal.CatalogItem{}, false
		}
		item.UnitCost = cost
	}
	return item, true
}

func trimCells(row []string) []string {
	out := make([]string, 0, len(row))
	empty := true
	for _, c := range row {
		c = strings.TrimSpace(c)
		if c != "" {
			empty = false
		}
		out = append(out, c)
	}
	if empty {
		return nil
	}
	return out
}
