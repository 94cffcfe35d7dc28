package ticket

// Format формат талона
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Ticket готовый к отдаче талон
type Ticket struct {
	ContentType string
	FileName    string
	Body        []byte
}

// Claims данные, извлеченные из проверенного QR
type Claims struct {
	BookingCode string `json:"bookingCode"`
	Date        string `json:"date"`
	SlotLabel   string `json:"slotLabel"`
	QueueNo     int    `json:"queueNo"`
}
