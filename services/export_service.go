package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// LedgerLister lists ledger entries for the admin export
type LedgerLister interface {
	ListAllEntries() ([]*models.LedgerEntry, error)
}

// ExportService generates the admin ledger/payout Excel export
type ExportService struct {
	ledger LedgerLister
}

// NewExportService creates a new export service
func NewExportService(ledger LedgerLister) *ExportService {
	return &ExportService{ledger: ledger}
}

// ExportLedgerToExcel builds a workbook with a payout summary sheet and the
// full ledger
func (s *ExportService) ExportLedgerToExcel() (*excelize.File, string, error) {
	entries, err := s.ledger.ListAllEntries()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ledger entries: %v", err)
	}

	f := excelize.NewFile()

	if err := s.createSummarySheet(f, entries); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}
	if err := s.createLedgerSheet(f, entries); err != nil {
		return nil, "", fmt.Errorf("failed to create ledger sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("Ledger_Export_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}

// createSummarySheet creates Sheet 1: totals per entry type and currency
func (s *ExportService) createSummarySheet(f *excelize.File, entries []*models.LedgerEntry) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	type bucket struct {
		entryType string
		currency  string
	}
	totals := make(map[bucket]float64)
	counts := make(map[bucket]int)
	for _, entry := range entries {
		key := bucket{entry.EntryType, entry.Currency}
		totals[key] += entry.Amount
		counts[key]++
	}

	var keys []bucket
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].entryType != keys[j].entryType {
			return keys[i].entryType < keys[j].entryType
		}
		return keys[i].currency < keys[j].currency
	})

	headers := []string{"Entry Type", "Currency", "Entries", "Total Amount"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, key := range keys {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), key.entryType)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), key.currency)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), counts[key])
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), utils.Round(totals[key]))
	}

	return nil
}

// createLedgerSheet creates Sheet 2: every ledger row
func (s *ExportService) createLedgerSheet(f *excelize.File, entries []*models.LedgerEntry) error {
	sheetName := "Ledger"
	f.NewSheet(sheetName)

	headers := []string{"Date", "Booking", "Entry Type", "Amount", "Currency", "Payment Intent"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, entry := range entries {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), entry.CreatedAt.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), entry.BookingID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), entry.EntryType)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), entry.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), entry.Currency)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), entry.PaymentIntentID)
	}

	return nil
}
