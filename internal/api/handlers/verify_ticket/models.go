package verify_ticket

// VerifyTicketRequest содержимое QR, отсканированное на въезде
type VerifyTicketRequest struct {
	Payload string `json:"payload"`
}
