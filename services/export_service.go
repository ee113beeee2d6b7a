package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hafidzm/splitledger-backend/models"
)

// ExportService renders a group's balance report, suggested settlements
// and settlement history into an Excel workbook. It reads only through
// the core services, never the store directly.
type ExportService struct {
	balanceService *BalanceService
	store          LedgerStore
}

// NewExportService creates a new export service
func NewExportService(balanceService *BalanceService, store LedgerStore) *ExportService {
	return &ExportService{
		balanceService: balanceService,
		store:          store,
	}
}

// ExportGroup generates an Excel file for a group
func (s *ExportService) ExportGroup(groupID string) (*excelize.File, string, error) {
	balances, err := s.balanceService.GetGroupBalances(groupID)
	if err != nil {
		return nil, "", err
	}

	transfers, err := s.balanceService.GetSuggestedSettlements(groupID)
	if err != nil {
		return nil, "", err
	}

	settlements, err := s.store.ListSettlements(SettlementFilter{GroupID: groupID})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	if err := s.createBalancesSheet(f, balances, transfers); err != nil {
		return nil, "", fmt.Errorf("failed to create balances sheet: %v", err)
	}
	if err := s.createHistorySheet(f, settlements); err != nil {
		return nil, "", fmt.Errorf("failed to create history sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("group_%s_export_%s.xlsx", groupID, time.Now().Format("2006-01-02"))
	return f, filename, nil
}

// createBalancesSheet writes the balance report and the suggested
// settlements below it
func (s *ExportService) createBalancesSheet(f *excelize.File, balances []models.GroupBalance, transfers []models.SuggestedTransfer) error {
	sheetName := "Balances"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	headers := []string{"User", "Total Paid", "Total Owed", "Received", "Paid Out", "Net", "Adjustment", "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, balance := range balances {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), balance.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), balance.TotalPaid)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), balance.TotalOwed)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), balance.ReceivedSettlements)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), balance.PaidSettlements)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), balance.Net)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), balance.GlobalAdjustment)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), balanceStatus(balance))
	}

	startRow := len(balances) + 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", startRow), "Suggested Settlements:")

	startRow++
	for i, header := range []string{"From", "To", "Amount"} {
		cell := fmt.Sprintf("%s%d", string(rune('A'+i)), startRow)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", startRow), fmt.Sprintf("C%d", startRow), headerStyle)

	for i, transfer := range transfers {
		row := startRow + 1 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), transfer.FromUsername)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), transfer.ToUsername)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), transfer.Amount)
	}

	return nil
}

// createHistorySheet writes every settlement recorded in the group
func (s *ExportService) createHistorySheet(f *excelize.File, settlements []*models.Settlement) error {
	sheetName := "Settlement History"
	f.NewSheet(sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	headers := []string{"From", "To", "Amount", "Status", "Message", "Rejected Reason", "Created"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, settlement := range settlements {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), settlement.FromUserID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), settlement.ToUserID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), settlement.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), settlement.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), settlement.Message)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), settlement.RejectedReason)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), time.UnixMilli(settlement.CreatedAt).Format("2006-01-02 15:04"))
	}

	return nil
}

func balanceStatus(balance models.GroupBalance) string {
	switch {
	case balance.IsSettled:
		return "settled"
	case balance.Owes:
		return "owes"
	default:
		return "is owed"
	}
}
