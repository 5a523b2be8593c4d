package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/govbudget/budget-portal/internal/models"
)

type fakeSource struct {
	rows []models.BudgetUtilization
}

func (f *fakeSource) BudgetUtilization(_ context.Context, _ string) ([]models.BudgetUtilization, error) {
	return f.rows, nil
}

func sampleRows() []models.BudgetUtilization {
	return []models.BudgetUtilization{
		{SchemeName: "Rural Roads", SchemeCode: "RR-01", FinancialYear: "2025-26", Allocated: 5000, Spent: 1250, UtilizationPercentage: 25},
		{SchemeName: "Scholarships", SchemeCode: "SCH-01", FinancialYear: "2025-26", Allocated: 2000, Spent: 2000, UtilizationPercentage: 100},
	}
}

func TestWriteCSV(t *testing.T) {
	exporter := NewExporter(&fakeSource{rows: sampleRows()}, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteCSV(context.Background(), &buf, "2025-26"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, utilizationHeader, records[0])
	assert.Equal(t, []string{"Rural Roads", "RR-01", "2025-26", "5000.00", "1250.00", "25.00"}, records[1])
	assert.Equal(t, "100.00", records[2][5])
}

func TestWriteCSVEmpty(t *testing.T) {
	exporter := NewExporter(&fakeSource{}, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteCSV(context.Background(), &buf, "2025-26"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriteXLSX(t *testing.T) {
	exporter := NewExporter(&fakeSource{rows: sampleRows()}, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteXLSX(context.Background(), &buf, "2025-26"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Budget Utilization")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Scheme Name", rows[0][0])
	assert.Equal(t, "Rural Roads", rows[1][0])
	assert.Equal(t, "Scholarships", rows[2][0])
}
