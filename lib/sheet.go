package lib

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const PARTS_SHEET = "parts"

/*
	Write parts to an xlsx file, one row per part. The header is the union
	of all attribute labels in the order they were first seen, then the
	datasheet URL column.
*/
func WriteSheet(dst string, parts []*Part) error {
	header := []string{}
	for _, part := range parts {
		header = append(header, part.Labels()...)
	}
	header = lo.Uniq(header)
	datasheetLabel := DatasheetLabel(header)
	header = append(header, datasheetLabel)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PARTS_SHEET); err != nil {
		return errors.Wrap(err, "name sheet")
	}

	if err := f.SetSheetRow(PARTS_SHEET, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}

	for i, part := range parts {
		row := make([]interface{}, len(header))
		for j, label := range header {
			if label == datasheetLabel {
				row[j] = part.Meta.DatasheetURL
				continue
			}

			value, _ := part.Get(label)
			row[j] = value
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(PARTS_SHEET, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}

	return errors.Wrapf(f.SaveAs(dst), "save %s", dst)
}

/*
	Collect the part codes of a BOM, either the first sheet of an xlsx file
	or a csv file. When the header row names an LCSC/JLC part column only
	that column is read, otherwise every cell is. Cells may hold a code or a
	part URL. Codes are returned once, in the order they first appear.
*/
func ReadPartColumn(src string) ([]string, error) {
	var (
		rows [][]string
		err  error
	)

	switch lower := strings.ToLower(src); {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		rows, err = readExcelRows(src)
	case strings.HasSuffix(lower, ".csv"):
		rows, err = readCSVRows(src)
	default:
		return nil, errors.Errorf("BOM must be an xlsx or csv file: %s", src)
	}
	if err != nil {
		return nil, err
	}

	cells := []string{}
	col := partColumn(rows)
	for _, row := range rows {
		switch {
		case col < 0:
			cells = append(cells, row...)
		case col < len(row):
			cells = append(cells, row[col])
		}
	}

	codes := lo.FilterMap(cells, func(cell string, _ int) (string, bool) {
		return ExtractPartCode(cell)
	})

	return lo.Uniq(codes), nil
}

// partColumn returns the index of the part number column, or -1.
func partColumn(rows [][]string) int {
	if len(rows) == 0 {
		return -1
	}

	for i, name := range rows[0] {
		name = strings.ToLower(name)
		if strings.Contains(name, "lcsc") || strings.Contains(name, "jlc") {
			return i
		}
	}

	return -1
}

func readExcelRows(src string) ([][]string, error) {
	f, err := excelize.OpenFile(src)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", src)
	}
	defer f.Close()

	rows, err := f.Rows(f.GetSheetList()[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet of %s", src)
	}
	defer rows.Close()

	lines := [][]string{}
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			continue
		}

		lines = append(lines, row)
	}

	return lines, nil
}

func readCSVRows(src string) ([][]string, error) {
	fp, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", src)
	}
	defer fp.Close()

	reader := csv.NewReader(fp)
	reader.FieldsPerRecord = -1

	lines := [][]string{}
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", src)
		}

		lines = append(lines, line)
	}

	return lines, nil
}
