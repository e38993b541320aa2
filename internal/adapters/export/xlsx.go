// Package export renders registrations as spreadsheets and printable slips.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"governanceevents/internal/domain"
)

const registrationsSheet = "Registrations"

var registrationHeaders = []string{
	"Reference", "Event", "Event Date", "Full Name", "ID/Passport", "Gender", "Email", "Phone",
	"Organization", "Payment Status", "Emergency Contact", "Emergency Relationship",
	"Emergency Email", "Emergency Phone", "Registered At",
}

type xlsxExporter struct{}

// NewXLSXExporter returns a RegistrationExporter producing one sheet with a header row.
func NewXLSXExporter() domain.RegistrationExporter {
	return xlsxExporter{}
}

func (xlsxExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (xlsxExporter) FileExtension() string { return ".xlsx" }

func (xlsxExporter) Export(w io.Writer, rows []*domain.RegistrationWithEvent) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registrationsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for i, h := range registrationHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(registrationsSheet, cell, h); err != nil {
			return err
		}
	}

	for i, item := range rows {
		if err := f.SetSheetRow(registrationsSheet, fmt.Sprintf("A%d", i+2), registrationRow(item)); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(registrationsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func registrationRow(item *domain.RegistrationWithEvent) *[]any {
	reg := item.Registration
	var title, date string
	if item.Event != nil {
		title = item.Event.Title
		date = item.Event.Date.Format(domain.DateLayout)
	}
	var ec domain.EmergencyContact
	if reg.EmergencyContact != nil {
		ec = *reg.EmergencyContact
	}
	row := []any{
		reg.ConfirmationRef, title, date, reg.FullName, reg.IDPassport, string(reg.Gender), reg.Email, reg.Phone,
		reg.Organization, string(reg.PaymentStatus), ec.FullName, ec.Relationship, ec.Email, ec.Phone,
		reg.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	return &row
}
