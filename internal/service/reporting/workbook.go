package reporting

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	historySheet   = "Historico"
	inventorySheet = "Inventario"
)

var (
	historyHeaders   = []interface{}{"ID", "Data", "Tema", "Tipo de Cálculo", "Dados", "Resultado"}
	inventoryHeaders = []interface{}{"ID", "Material", "Quantidade", "Unidade", "Localização"}
)

// WriteWorkbook renders the history and the stock as an XLSX workbook.
func (s *Service) WriteWorkbook(w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	// the default sheet becomes the history sheet
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), historySheet); err != nil {
		return fmt.Errorf("rename history sheet: %w", err)
	}

	rows := [][]interface{}{historyHeaders}
	for _, e := range s.history.List() {
		rows = append(rows, historyRow(e))
	}
	if err := writeSheet(f, historySheet, rows); err != nil {
		return err
	}

	if s.inventory != nil {
		if _, err := f.NewSheet(inventorySheet); err != nil {
			return fmt.Errorf("create inventory sheet: %w", err)
		}
		rows = [][]interface{}{inventoryHeaders}
		for _, item := range s.inventory.List() {
			rows = append(rows, []interface{}{item.ID, item.Name, item.Quantity, item.Unit, item.Location})
		}
		if err := writeSheet(f, inventorySheet, rows); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolve cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("set %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
