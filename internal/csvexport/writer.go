package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cardintake/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// patientColumns defines the patient roster CSV header row (13 columns).
var patientColumns = []string{
	"First Name",
	"Last Name",
	"Date of Birth",
	"Gender",
	"Phone",
	"Email",
	"Street",
	"City",
	"State",
	"Zip Code",
	"Insurance ID",
	"Payer Name",
	"Created At",
}

// chargeColumns defines the charge export CSV header row (9 columns).
var chargeColumns = []string{
	"Patient ID",
	"Provider ID",
	"CPT Code",
	"Service Date",
	"Minutes",
	"Units",
	"Status",
	"Notes",
	"Created At",
}

// PatientWriter wraps csv.Writer for exporting the patient roster as CSV.
type PatientWriter struct {
	csv *csv.Writer
}

// NewPatientWriter creates a PatientWriter that writes CSV to w.
func NewPatientWriter(w io.Writer) *PatientWriter {
	return &PatientWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 13-column header row.
func (w *PatientWriter) WriteHeader() error {
	return w.csv.Write(patientColumns)
}

// WritePatients converts a batch of patients to CSV rows and writes them.
func (w *PatientWriter) WritePatients(patients []domain.Patient) error {
	for i := range patients {
		row := patientToRow(&patients[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *PatientWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *PatientWriter) Error() error {
	return w.csv.Error()
}

func patientToRow(p *domain.Patient) []string {
	row := make([]string, len(patientColumns))
	row[0] = p.FirstName
	row[1] = p.LastName
	row[2] = p.DateOfBirth
	row[3] = p.Gender
	row[4] = p.Phone
	row[5] = p.Email
	row[6] = p.Street
	row[7] = p.City
	row[8] = p.State
	row[9] = p.ZipCode
	row[10] = p.InsuranceID
	row[11] = p.PayerName
	row[12] = p.CreatedAt.Format(time.RFC3339)
	return row
}

// ChargeWriter wraps csv.Writer for exporting charges as CSV.
type ChargeWriter struct {
	csv *csv.Writer
}

// NewChargeWriter creates a ChargeWriter that writes CSV to w.
func NewChargeWriter(w io.Writer) *ChargeWriter {
	return &ChargeWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 9-column header row.
func (w *ChargeWriter) WriteHeader() error {
	return w.csv.Write(chargeColumns)
}

// WriteCharges converts a batch of charges to CSV rows and writes them.
func (w *ChargeWriter) WriteCharges(charges []domain.Charge) error {
	for i := range charges {
		row := chargeToRow(&charges[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *ChargeWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *ChargeWriter) Error() error {
	return w.csv.Error()
}

func chargeToRow(ch *domain.Charge) []string {
	row := make([]string, len(chargeColumns))
	row[0] = ch.PatientID.String()
	row[1] = ch.ProviderID.String()
	row[2] = ch.CPTCode
	row[3] = ch.ServiceDate.Format("2006-01-02")
	row[4] = strconv.Itoa(ch.Minutes)
	row[5] = strconv.Itoa(ch.Units)
	row[6] = string(ch.Status)
	row[7] = ch.Notes
	row[8] = ch.CreatedAt.Format(time.RFC3339)
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
