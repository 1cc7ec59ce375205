package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ustoz-pro/ustoz/internal/course"
)

const testBankSheet = "Tests"

// RenderTestBankXLSX writes the multiple-choice test bank as a spreadsheet:
// a header row, then one row per test item with the question, its options
// and the correct answer.
func RenderTestBankXLSX(topicTitle string, tests []course.TestItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", testBankSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	headers := []string{"#", "Topic", "Question", "Option A", "Option B", "Option C", "Option D", "Correct Answer"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(testBankSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, t := range tests {
		row := i + 2
		values := []any{i + 1, topicTitle, t.Question}
		for j := 0; j < 4; j++ {
			if j < len(t.Options) {
				values = append(values, t.Options[j])
			} else {
				values = append(values, "")
			}
		}
		values = append(values, t.CorrectAnswer)
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(testBankSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
