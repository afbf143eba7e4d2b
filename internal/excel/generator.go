package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// ProductList renders the admin product grid as an xlsx workbook.
func (g *Generator) ProductList(rows []model.ProductListRow) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Товары"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Дата выгрузки")
	set("B1", formatDate(time.Now()))
	set("A2", "Количество товаров")
	set("B2", len(rows))

	tableRow := 4
	headers := []string{
		"Штрих-код",
		"Код клиента",
		"Статус",
		"Без владельца",
		"Обновлено",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, tableRow)
		if err != nil {
			return nil, err
		}
		set(cell, header)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Barcode,
			row.CustomerFullCode(),
			row.Status.Display().Label,
			boolLabel(row.IsHomeless),
			formatDate(row.UpdatedAt),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, tableRow+1+i)
			if err != nil {
				return nil, err
			}
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 16)
	_ = file.SetColWidth(sheet, "C", "C", 20)
	_ = file.SetColWidth(sheet, "D", "D", 14)
	_ = file.SetColWidth(sheet, "E", "E", 14)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func boolLabel(value bool) string {
	if value {
		return "Да"
	}
	return "Нет"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02.01.2006")
}
