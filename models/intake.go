package models

import "fmt"

// IntakeVariant selects which payment-evidence field the registration
// form carries. The active variant is a deployment-time parameter, not
// three separate code paths.
type IntakeVariant string

const (
	// IntakeTransactionCode requires an M-Pesa transaction code.
	IntakeTransactionCode IntakeVariant = "transaction_code"
	// IntakePhone requires the paying M-Pesa phone number.
	IntakePhone IntakeVariant = "phone"
	// IntakeReservation carries no payment evidence; the slot is
	// reserved and settled offline.
	IntakeReservation IntakeVariant = "reservation"
)

func ParseIntakeVariant(s string) (IntakeVariant, error) {
	switch v := IntakeVariant(s); v {
	case IntakeTransactionCode, IntakePhone, IntakeReservation:
		return v, nil
	}
	return "", fmt.Errorf("unknown intake variant %q", s)
}
