package services

import (
	"bytes"
	"fmt"
	"strings"

	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking vouchers and payment receipts as PDFs for
// the front desk to print.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	PackageRepo repositories.PackageRepository
	PilgrimRepo repositories.PilgrimRepository
	RequestID   string
	Loader      func(bookingID int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID       int64
	ReferenceNumber string
	Status          string
	PaymentStatus   string
	AmountPaid      int64
	CurrencyCode    string
	PilgrimName     string
	PilgrimPhone    string
	PackageName     string
	PackagePrice    int64
	TripStartDate   string
	TripEndDate     string
	RoomAssignment  string
	TicketNumber    string
}

func (s DocsService) GenerateVoucher(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_voucher", fmt.Sprintf("booking_id=%d", bookingID))
	return buildVoucherPDF(data)
}

func (s DocsService) GenerateReceipt(paymentID int64) ([]byte, string, error) {
	p, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.loadBookingDocData(p.BookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("payment_id=%d", paymentID))
	return buildReceiptPDF(data, p.ID, p.Amount, p.CurrencyCode, p.PaymentMethod, p.PaymentDate, p.ReferenceNumber)
}

func (s DocsService) loadBookingDocData(bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	var out bookingDocData
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return out, err
	}
	out.BookingID = b.ID
	out.ReferenceNumber = b.ReferenceNumber
	out.Status = b.Status
	out.PaymentStatus = b.PaymentStatus
	out.AmountPaid = b.AmountPaid
	out.CurrencyCode = b.CurrencyCode
	out.RoomAssignment = b.RoomAssignment
	out.TicketNumber = b.TicketNumber

	if pilgrim, err := s.PilgrimRepo.GetByID(b.PilgrimID); err == nil {
		out.PilgrimName = pilgrim.FullName
		out.PilgrimPhone = pilgrim.Phone
	}
	if pkg, err := s.PackageRepo.GetByID(b.PackageID); err == nil {
		out.PackageName = pkg.Name
		out.PackagePrice = pkg.Price
		out.TripStartDate = pkg.TripStartDate
		out.TripEndDate = pkg.TripEndDate
	}
	return out, nil
}

func buildVoucherPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("No Referensi   : %s", safe(d.ReferenceNumber, "-")),
		fmt.Sprintf("Nama Jamaah    : %s", safe(d.PilgrimName, "-")),
		fmt.Sprintf("No HP          : %s", safe(d.PilgrimPhone, "-")),
		fmt.Sprintf("Paket          : %s", safe(d.PackageName, "-")),
		fmt.Sprintf("Periode Trip   : %s s/d %s", safe(dateOnly(d.TripStartDate), "-"), safe(dateOnly(d.TripEndDate), "-")),
		fmt.Sprintf("Status         : %s", safe(d.Status, "-")),
		fmt.Sprintf("Pembayaran     : %s", safe(d.PaymentStatus, "-")),
		fmt.Sprintf("Harga Paket    : %s", utils.FormatMinorUnits(d.PackagePrice, d.CurrencyCode)),
		fmt.Sprintf("Sudah Dibayar  : %s", utils.FormatMinorUnits(d.AmountPaid, d.CurrencyCode)),
		fmt.Sprintf("Kamar          : %s", safe(d.RoomAssignment, "-")),
		fmt.Sprintf("No Tiket       : %s", safe(d.TicketNumber, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: Voucher ini bukan dokumen perjalanan. Harap bawa paspor asli saat keberangkatan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("voucher-%s.pdf", safeFilenamePart(d.ReferenceNumber))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(d bookingDocData, paymentID, amount int64, currency, method, date, ref string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "KWITANSI PEMBAYARAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("No Kwitansi    : PAY-%d", paymentID),
		fmt.Sprintf("Booking        : %s", safe(d.ReferenceNumber, "-")),
		fmt.Sprintf("Nama Jamaah    : %s", safe(d.PilgrimName, "-")),
		fmt.Sprintf("Paket          : %s", safe(d.PackageName, "-")),
		fmt.Sprintf("Jumlah         : %s", utils.FormatMinorUnits(amount, currency)),
		fmt.Sprintf("Metode         : %s", safe(method, "-")),
		fmt.Sprintf("Tanggal        : %s", safe(dateOnly(date), "-")),
		fmt.Sprintf("Referensi Bank : %s", safe(ref, "-")),
		fmt.Sprintf("Total Terbayar : %s", utils.FormatMinorUnits(d.AmountPaid, d.CurrencyCode)),
		fmt.Sprintf("Status Bayar   : %s", safe(d.PaymentStatus, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("receipt-%s-%d.pdf", safeFilenamePart(d.ReferenceNumber), paymentID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "na"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "-")
	return replacer.Replace(s)
}
