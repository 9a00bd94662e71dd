package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"nyumbani/internal/common"
	"nyumbani/internal/finance"
	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
)

// ExportService renders payment data for humans: PDF receipts and landlord
// statements, plus a full payment ledger as a spreadsheet.
type ExportService interface {
	PaymentReceipt(ctx context.Context, paymentID uuid.UUID) ([]byte, error)
	LandlordStatement(ctx context.Context, landlordID uuid.UUID, from, to time.Time) ([]byte, error)
	PaymentLedgerXLSX(ctx context.Context, from, to time.Time) ([]byte, error)
}

type exportService struct {
	paymentRepo  repositories.PaymentRepository
	tenantRepo   repositories.TenantRepository
	propertyRepo repositories.PropertyRepository
	landlordRepo repositories.LandlordRepository
	feePolicy    finance.FeePolicy
}

func NewExportService(paymentRepo repositories.PaymentRepository, tenantRepo repositories.TenantRepository,
	propertyRepo repositories.PropertyRepository, landlordRepo repositories.LandlordRepository,
	feePolicy finance.FeePolicy) ExportService {
	return &exportService{
		paymentRepo:  paymentRepo,
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		landlordRepo: landlordRepo,
		feePolicy:    feePolicy,
	}
}

func paymentTypeLabel(p *models.Payment) string {
	if p.Type == nil {
		return models.PaymentTypeRent
	}
	return *p.Type
}

// PaymentReceipt renders a one-page PDF receipt for a single payment.
func (s *exportService) PaymentReceipt(ctx context.Context, paymentID uuid.UUID) ([]byte, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.GetByID(ctx, payment.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "NYUMBANI PAYMENT RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Receipt Number: %s", payment.ID.String()))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Payment Date: %s", payment.Date.Format("02-Jan-2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "RECEIVED FROM:")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tenant.Name)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Unit: %s", tenant.UnitName))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)

	headers := []string{"Description", "Amount"}
	colWidths := []float64{120, 50}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(colWidths[0], 8, paymentTypeLabel(payment), "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%.2f", payment.Amount), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("TOTAL RECEIVED: %.2f", payment.Amount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// LandlordStatement renders the landlord's payments for a period with the
// management-fee split per transaction and the net owed to the landlord.
func (s *exportService) LandlordStatement(ctx context.Context, landlordID uuid.UUID, from, to time.Time) ([]byte, error) {
	landlord, err := s.landlordRepo.GetByID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	properties, err := s.propertyRepo.ListByLandlord(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}

	// Index the landlord's tenants by ID so we can filter their payments.
	tenantsByID := make(map[uuid.UUID]*models.Tenant)
	for _, property := range properties {
		tenants, err := s.tenantRepo.ListByProperty(ctx, property.ID)
		if err != nil {
			return nil, fmt.Errorf("load tenants for %s: %w", property.Name, err)
		}
		for _, t := range tenants {
			tenantsByID[t.ID] = t
		}
	}

	payments, err := s.paymentRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "NYUMBANI LANDLORD STATEMENT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Landlord: %s", landlord.Name))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", from.Format("02-Jan-2006"), to.Format("02-Jan-2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)

	headers := []string{"Date", "Tenant", "Type", "Amount", "Mgmt Fee", "Net"}
	colWidths := []float64{25, 50, 25, 25, 25, 25}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	var totalGross, totalFee, totalNet float64
	for _, p := range payments {
		tenant, ok := tenantsByID[p.TenantID]
		if !ok {
			continue
		}

		var fee, net float64
		if p.Type != nil && *p.Type == models.PaymentTypeDeposit {
			// Deposits pass through in full; no fee is taken.
			net = p.Amount
		} else {
			var serviceCharge float64
			if tenant.Lease != nil {
				serviceCharge = common.SafeFloat64(tenant.Lease.ServiceCharge)
			}
			breakdown := s.feePolicy.TransactionBreakdown(p.Amount, serviceCharge)
			fee = breakdown.ManagementFee
			net = breakdown.NetToLandlord + breakdown.Excess
		}

		pdf.CellFormat(colWidths[0], 8, p.Date.Format("02-01-2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, tenant.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, paymentTypeLabel(p), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", p.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 8, fmt.Sprintf("%.2f", fee), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", net), "1", 0, "R", false, 0, "")
		pdf.Ln(8)

		totalGross += p.Amount
		totalFee += fee
		totalNet += net
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Gross Collected: %.2f", totalGross))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Management Fees: %.2f", totalFee))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("NET TO LANDLORD: %.2f", totalNet))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render statement: %w", err)
	}
	return buf.Bytes(), nil
}

// PaymentLedgerXLSX exports every payment in the period as a spreadsheet.
func (s *exportService) PaymentLedgerXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	payments, err := s.paymentRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	tenants, err := s.tenantRepo.List(ctx, true, aggregateFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("load tenants: %w", err)
	}
	tenantNames := make(map[uuid.UUID]string, len(tenants))
	for _, t := range tenants {
		tenantNames[t.ID] = t.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Tenant", "Type", "Method", "Amount", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, p := range payments {
		method := ""
		if p.Method != nil {
			method = *p.Method
		}
		notes := ""
		if p.Notes != nil {
			notes = *p.Notes
		}
		values := []interface{}{
			p.Date.Format("2006-01-02"),
			tenantNames[p.TenantID],
			paymentTypeLabel(p),
			method,
			p.Amount,
			notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render ledger: %w", err)
	}
	return buf.Bytes(), nil
}
