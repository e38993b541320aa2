package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"governanceevents/internal/domain"
)

type pdfSlipRenderer struct{}

// NewPDFSlipRenderer returns a renderer for a one-page A4 confirmation slip.
func NewPDFSlipRenderer() domain.ConfirmationSlipRenderer {
	return pdfSlipRenderer{}
}

func (pdfSlipRenderer) Render(w io.Writer, item *domain.RegistrationWithEvent) error {
	if item == nil || item.Registration == nil || item.Event == nil {
		return fmt.Errorf("confirmation slip needs a registration and its event")
	}
	reg, ev := item.Registration, item.Event

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Registration Confirmation")
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, tr(ev.Title))
	pdf.Ln(10)

	rows := [][2]string{
		{"Reference", reg.ConfirmationRef},
		{"Status", statusLabel(item.State, ev.Price)},
		{"Name", reg.FullName},
		{"Organization", reg.Organization},
		{"Email", reg.Email},
		{"Date", ev.FormattedDate()},
		{"Time", ev.Time},
		{"Details", ev.MeetingDetails()},
	}
	for _, r := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 7, r[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(140, 7, tr(r[1]), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Please present this reference at check-in.", "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func statusLabel(state domain.RegistrationState, price domain.Price) string {
	switch state {
	case domain.StatePendingPayment:
		return "Awaiting payment of " + price.Label()
	case domain.StateConfirmed:
		return "Confirmed (paid)"
	case domain.StateNotRequired:
		return "Confirmed (free)"
	}
	return string(state)
}
