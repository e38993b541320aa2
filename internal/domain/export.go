package domain

import "io"

// RegistrationExporter writes a registration listing as a spreadsheet.
type RegistrationExporter interface {
	ContentType() string
	FileExtension() string
	Export(w io.Writer, rows []*RegistrationWithEvent) error
}

// ConfirmationSlipRenderer writes a printable confirmation slip for one registration.
type ConfirmationSlipRenderer interface {
	Render(w io.Writer, item *RegistrationWithEvent) error
}
