package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/govbudget/budget-portal/internal/models"
)

// UtilizationSource supplies the rows of the scheme-wise utilization report
type UtilizationSource interface {
	BudgetUtilization(ctx context.Context, financialYear string) ([]models.BudgetUtilization, error)
}

// Exporter renders the budget utilization report as CSV or XLSX
type Exporter struct {
	source UtilizationSource
	logger *zap.Logger
}

func NewExporter(source UtilizationSource, logger *zap.Logger) *Exporter {
	return &Exporter{
		source: source,
		logger: logger,
	}
}

var utilizationHeader = []string{
	"Scheme Name",
	"Scheme Code",
	"Financial Year",
	"Allocated",
	"Spent",
	"Utilization %",
}

// WriteCSV streams the utilization report for a financial year as CSV
func (e *Exporter) WriteCSV(ctx context.Context, w io.Writer, financialYear string) error {
	rows, err := e.source.BudgetUtilization(ctx, financialYear)
	if err != nil {
		return fmt.Errorf("failed to load utilization report: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(utilizationHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.SchemeName,
			row.SchemeCode,
			row.FinancialYear,
			strconv.FormatFloat(row.Allocated, 'f', 2, 64),
			strconv.FormatFloat(row.Spent, 'f', 2, 64),
			strconv.FormatFloat(row.UtilizationPercentage, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	e.logger.Info("Exported utilization report",
		zap.String("format", "csv"),
		zap.String("financial_year", financialYear),
		zap.Int("rows", len(rows)))

	return nil
}

// WriteXLSX renders the utilization report for a financial year as a workbook
func (e *Exporter) WriteXLSX(ctx context.Context, w io.Writer, financialYear string) error {
	rows, err := e.source.BudgetUtilization(ctx, financialYear)
	if err != nil {
		return fmt.Errorf("failed to load utilization report: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Budget Utilization"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range utilizationHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(utilizationHeader), 1)
		f.SetCellStyle(sheetName, "A1", lastCell, headerStyle)
	}

	for i, row := range rows {
		values := []interface{}{
			row.SchemeName,
			row.SchemeCode,
			row.FinancialYear,
			row.Allocated,
			row.Spent,
			row.UtilizationPercentage,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Exported utilization report",
		zap.String("format", "xlsx"),
		zap.String("financial_year", financialYear),
		zap.Int("rows", len(rows)))

	return nil
}
