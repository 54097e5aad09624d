package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kendall-kelly/furniture-portal-api/utils"
	"github.com/tealeg/xlsx"
)

// ReportService exports a client's furniture, purchases and contract as a spreadsheet
type ReportService struct {
	portal *Portal
}

func NewReportService(p *Portal) *ReportService {
	return &ReportService{portal: p}
}

// ClientWorkbook builds the export of one client. Returns false when the client does not exist.
func (s *ReportService) ClientWorkbook(ctx context.Context, clientID string) (*xlsx.File, bool, error) {
	p := s.portal
	client, ok := p.Clients.GetByID(clientID)
	if !ok {
		return nil, false, nil
	}
	contract, _, err := p.Aggregator.GetOrCreate(ctx, clientID)
	if err != nil {
		return nil, true, err
	}

	file := xlsx.NewFile()

	furniture, err := file.AddSheet("Furniture")
	if err != nil {
		return nil, true, fmt.Errorf("failed to create furniture sheet: %w", err)
	}
	addHeader(furniture, "ID", "Name", "Status", "Progress %", "Estimated Completion", "Project Value", "Material", "Dimensions")
	for _, item := range p.Furniture.ListByOwner(clientID) {
		progress, _ := ProgressPercentage(item.Status)
		row := furniture.AddRow()
		row.AddCell().SetValue(item.ID)
		row.AddCell().SetValue(item.Name)
		row.AddCell().SetValue(string(item.Status))
		row.AddCell().SetValue(progress)
		row.AddCell().SetValue(utils.FormatDisplayDate(item.EstimatedCompletionDate))
		row.AddCell().SetValue(item.Value())
		row.AddCell().SetValue(deref(item.Material))
		row.AddCell().SetValue(deref(item.Dimensions))
	}

	purchased, err := file.AddSheet("Purchased Items")
	if err != nil {
		return nil, true, fmt.Errorf("failed to create purchased items sheet: %w", err)
	}
	addHeader(purchased, "ID", "Name", "Quantity", "Unit Price", "Total Price", "Details")
	for _, item := range p.PurchasedItems.ListByOwner(clientID) {
		row := purchased.AddRow()
		row.AddCell().SetValue(item.ID)
		row.AddCell().SetValue(item.Name)
		row.AddCell().SetValue(item.Quantity)
		row.AddCell().SetValue(item.UnitPrice)
		row.AddCell().SetValue(item.TotalPrice)
		row.AddCell().SetValue(deref(item.Details))
	}

	contractSheet, err := file.AddSheet("Contract")
	if err != nil {
		return nil, true, fmt.Errorf("failed to create contract sheet: %w", err)
	}
	fields := [][2]interface{}{
		{"Contract Number", contract.ContractNumber},
		{"Client", client.Name},
		{"Date Signed", utils.FormatDisplayDate(contract.DateSigned)},
		{"Project Address", contract.ProjectAddress},
		{"Total Value", contract.TotalValue},
		{"Payment Terms", contract.PaymentTerms},
		{"Scope of Work", contract.ScopeOfWork},
	}
	for _, field := range fields {
		row := contractSheet.AddRow()
		row.AddCell().SetValue(field[0])
		row.AddCell().SetValue(field[1])
	}

	return file, true, nil
}

// WriteClientWorkbook streams the export of one client to w
func (s *ReportService) WriteClientWorkbook(ctx context.Context, clientID string, w io.Writer) (bool, error) {
	file, ok, err := s.ClientWorkbook(ctx, clientID)
	if err != nil || !ok {
		return ok, err
	}
	if err := file.Write(w); err != nil {
		return true, fmt.Errorf("failed to write workbook: %w", err)
	}
	return true, nil
}

// ExportFilename returns the download name for a client export
func ExportFilename(username string) string {
	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, username)
	return fmt.Sprintf("client_%s.xlsx", name)
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
