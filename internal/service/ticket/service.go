package ticket

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/booking"
)

const (
	DefaultQRSize = 256

	payloadSeparator = "|"
	payloadParts     = 5
)

// Service печать талонов на въезд: QR с подписанными данными бронирования
type Service struct {
	bookingRepo BookingRepository
	secret      []byte
	qrSize      int
	logger      Logger
}

// NewService создает сервис талонов
func NewService(bookingRepo BookingRepository, secret string, qrSize int, logger Logger) *Service {
	if qrSize <= 0 {
		qrSize = DefaultQRSize
	}
	return &Service{
		bookingRepo: bookingRepo,
		secret:      []byte(secret),
		qrSize:      qrSize,
		logger:      logger,
	}
}

// Payload строка для QR: bookingCode|date|slotLabel|queueNo|signature
func (s *Service) Payload(b *domain.Booking) string {
	data := strings.Join([]string{
		b.BookingCode,
		b.Date.Format(domain.DateFormat),
		b.SlotLabel,
		strconv.Itoa(b.QueueNo),
	}, payloadSeparator)

	return data + payloadSeparator + s.sign(data)
}

// Verify проверяет подпись содержимого QR, отсканированного на въезде
func (s *Service) Verify(payload string) (*Claims, error) {
	parts := strings.Split(payload, payloadSeparator)
	if len(parts) != payloadParts {
		return nil, fmt.Errorf("%w: expected %d parts, got %d", ErrInvalidPayload, payloadParts, len(parts))
	}

	data := strings.Join(parts[:payloadParts-1], payloadSeparator)
	if !hmac.Equal([]byte(s.sign(data)), []byte(parts[payloadParts-1])) {
		return nil, fmt.Errorf("%w: signature mismatch", ErrInvalidPayload)
	}

	queueNo, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: queue number %q", ErrInvalidPayload, parts[3])
	}

	return &Claims{
		BookingCode: parts[0],
		Date:        parts[1],
		SlotLabel:   parts[2],
		QueueNo:     queueNo,
	}, nil
}

// Render формирует талон бронирования в запрошенном формате
func (s *Service) Render(ctx context.Context, id string, format Format) (*Ticket, error) {
	if format != FormatPNG && format != FormatPDF {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Render: failed to get booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Render - get booking: %v", ErrInternal, err)
	}

	qrPNG, err := qrcode.Encode(s.Payload(booking), qrcode.Medium, s.qrSize)
	if err != nil {
		s.logger.Error("Render: failed to encode QR for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Render - encode QR: %v", ErrInternal, err)
	}

	if format == FormatPNG {
		s.logger.Info("Render: PNG ticket issued, code=%s", booking.BookingCode)
		return &Ticket{
			ContentType: "image/png",
			FileName:    fmt.Sprintf("ticket-%s.png", booking.BookingCode),
			Body:        qrPNG,
		}, nil
	}

	body, err := renderPDF(booking, qrPNG)
	if err != nil {
		s.logger.Error("Render: failed to build PDF for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Render - build PDF: %v", ErrInternal, err)
	}

	s.logger.Info("Render: PDF ticket issued, code=%s", booking.BookingCode)
	return &Ticket{
		ContentType: "application/pdf",
		FileName:    fmt.Sprintf("ticket-%s.pdf", booking.BookingCode),
		Body:        body,
	}, nil
}

func (s *Service) sign(data string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func renderPDF(b *domain.Booking, qrPNG []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Delivery queue ticket", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 40)
	pdf.CellFormat(0, 20, fmt.Sprintf("No. %d", b.QueueNo), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Code %s", b.BookingCode), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	lines := []string{
		fmt.Sprintf("Date: %s", b.Date.Format(domain.DateFormat)),
		fmt.Sprintf("Slot: %s", b.SlotLabel),
		fmt.Sprintf("Supplier: %s %s", b.SupplierCode, b.SupplierName),
		fmt.Sprintf("Rubber type: %s", b.RubberType),
	}
	if b.TruckRegister != nil {
		lines = append(lines, fmt.Sprintf("Truck: %s", *b.TruckRegister))
	}
	if b.TruckType != nil {
		lines = append(lines, fmt.Sprintf("Truck type: %s", *b.TruckType))
	}

	pdf.SetFont("Arial", "", 12)
	for _, line := range lines {
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 44, pdf.GetY()+6, 60, 60, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
