// Package tabular decodes spreadsheet-like payloads into raw box-score rows.
package tabular

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
)

// Format names a supported payload encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Decode reads r according to format.
func Decode(format Format, r io.Reader) ([]boxscore.RawRow, error) {
	switch format {
	case FormatCSV:
		return DecodeCSV(r)
	case FormatJSON:
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, crerr.Wrap(err, "read json rows")
		}
		return DecodeJSON(raw)
	case FormatXLSX:
		return DecodeXLSX(r)
	default:
		return nil, crerr.Newf("unsupported row format %q", format)
	}
}

// DecodeCSV reads a header line followed by data lines. Quotes are lenient
// and lines may be ragged.
func DecodeCSV(r io.Reader) ([]boxscore.RawRow, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	table, err := reader.ReadAll()
	if err != nil {
		return nil, crerr.Wrap(err, "decode csv rows")
	}
	return FromTable(table), nil
}

// DecodeXLSX reads the first sheet of a workbook, header row first.
func DecodeXLSX(r io.Reader) ([]boxscore.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, crerr.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, crerr.Wrapf(err, "read sheet %q", sheets[0])
	}
	return FromTable(table), nil
}

// DecodeJSON reads an array of flat objects. Numbers and booleans are
// stringified; nulls and nested values are dropped.
func DecodeJSON(raw []byte) ([]boxscore.RawRow, error) {
	var items []map[string]any
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, crerr.Wrap(err, "decode json rows")
	}

	out := make([]boxscore.RawRow, 0, len(items))
	for _, item := range items {
		if row := RowFromObject(item); len(row) > 0 {
			out = append(out, row)
		}
	}
	return out, nil
}

// RowFromObject turns one decoded JSON object into a raw row. Keys are
// visited in sorted order so two keys that trim to the same header resolve
// the same way on every call: the first non-blank value wins.
func RowFromObject(item map[string]any) boxscore.RawRow {
	keys := make([]string, 0, len(item))
	for key := range item {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	row := make(boxscore.RawRow, len(item))
	for _, key := range keys {
		header := cleanHeader(key)
		if header == "" {
			continue
		}
		if text, ok := stringify(item[key]); ok {
			setCell(row, header, text)
		}
	}
	return row
}

// FromTable keys every data line by the header line. Columns with a blank
// header are ignored and lines with no non-blank cell are skipped. A repeated
// header keeps its first non-blank cell.
func FromTable(table [][]string) []boxscore.RawRow {
	if len(table) == 0 {
		return nil
	}

	headers := make([]string, len(table[0]))
	for i, h := range table[0] {
		headers[i] = cleanHeader(h)
	}

	out := make([]boxscore.RawRow, 0, len(table)-1)
	for _, line := range table[1:] {
		row := make(boxscore.RawRow, len(headers))
		blank := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			cell := ""
			if i < len(line) {
				cell = strings.TrimSpace(line[i])
			}
			if cell != "" {
				blank = false
			}
			setCell(row, header, cell)
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}

// setCell never lets a blank or later cell shadow an earlier non-blank one.
func setCell(row boxscore.RawRow, header, cell string) {
	if existing, ok := row[header]; ok && (existing != "" || cell == "") {
		return
	}
	row[header] = cell
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
