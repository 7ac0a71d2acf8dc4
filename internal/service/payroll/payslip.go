package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderPayslip draws a one-page A4 payslip for the record.
func RenderPayslip(record payroll.PayrollRecord, emp employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	period := time.Date(record.Year, time.Month(record.Month), 1, 0, 0, 0, 0, time.UTC)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", emp.FullName, emp.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Mode: %s", record.Mode))
	pdf.Ln(7)
	if record.Mode == payroll.ModeAttendance {
		pdf.Cell(0, 8, fmt.Sprintf("Payable days: %d of %d", record.PayableDays, record.TotalDays))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Base salary", record.BaseSalary},
		{"Allowances", record.Allowances},
		{"Deductions", record.Deductions.Neg()},
		{"Bonus", record.Bonus},
	}
	for _, line := range lines {
		pdf.CellFormat(80, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, line.amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 10, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 10, record.TotalSalary.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(4)
	status := string(record.Status)
	if record.PaymentDate != nil {
		status += " on " + record.PaymentDate.Format("2006-01-02")
	}
	pdf.Cell(0, 8, "Status: "+status)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
