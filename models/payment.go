package models

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Terminal reports whether the status admits no further transition.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentApproved || s == PaymentRejected
}

// PendingPayment is a submitted registration's payment evidence awaiting
// an admin decision. Exactly one of MpesaTransactionCode or PhoneNumber
// is set; both empty means a reservation without payment evidence.
type PendingPayment struct {
	ID                   int           `json:"id"`
	FullName             string        `json:"full_name"`
	EfootballUsername    string        `json:"efootball_username"`
	MpesaTransactionCode string        `json:"mpesa_transaction_code,omitempty"`
	PhoneNumber          string        `json:"phone_number,omitempty"`
	Amount               int           `json:"amount"`
	Status               PaymentStatus `json:"status"`
}

// Evidence returns the payment-evidence value regardless of variant,
// empty for a reservation.
func (p PendingPayment) Evidence() string {
	if p.MpesaTransactionCode != "" {
		return p.MpesaTransactionCode
	}
	return p.PhoneNumber
}
