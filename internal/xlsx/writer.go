// Package xlsx exports the resolved hero skill list as a spreadsheet.
package xlsx

import (
	"context"
	"fmt"

	"hero-skill-lister/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the skill list is written to.
const SheetName = "Heroes"

var header = []any{"Unit ID", "Hero", "Ability ID", "Skill", "Tooltip"}

// Writer saves report entries to an .xlsx workbook.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer { return &Writer{path: path} }

func (w *Writer) Name() string { return "xlsx" }

// Export writes one row per skill. Heroes without a resolved skill still
// get a row so they appear in the sheet.
func (w *Writer) Export(ctx context.Context, entries []report.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	row := 2
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(e.Skills) == 0 {
			if err := setRow(f, row, []any{e.UnitID, e.Name}); err != nil {
				return err
			}
			row++
			continue
		}
		for _, s := range e.Skills {
			if err := setRow(f, row, []any{e.UnitID, e.Name, s.AbilityID, s.Name, s.Tooltip}); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	log.Info().Str("path", w.path).Int("rows", row-2).Msg("Exported hero skills to XLSX")
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
