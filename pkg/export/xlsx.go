package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/models"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// WriteExpensesXLSX writes the expense list as a spreadsheet. The rows
// are emitted in the order given, which is the filtered list order.
func WriteExpensesXLSX(w io.Writer, expenses []models.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	// StreamWriter keeps memory flat for large exports
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := []interface{}{
		"date", "description", "restaurant", "meal_type", "order_type", "category", "tags", "amount",
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, e := range expenses {
		restaurant := ""
		if e.Restaurant != nil {
			restaurant = e.Restaurant.Name
		}
		tags := make([]string, 0, len(e.Tags))
		for _, tag := range e.Tags {
			tags = append(tags, tag.Name)
		}

		row := []interface{}{
			e.SpentAt.Format("2006-01-02"),
			e.Description,
			restaurant,
			e.MealType,
			e.OrderType,
			e.Category,
			strings.Join(tags, ", "),
			e.Amount,
		}
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		if err := sw.SetRow(cellAddr, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
