package services

import (
	"context"

	"github.com/phaetex/efootball-client/api"
)

// VerificationService moves a pending payment to approved or rejected.
// Both outcomes are terminal. The surrounding layer has already gated
// the caller at super_admin tier; this service trusts that gate.
//
// On success nothing is mutated locally: the caller must re-fetch the
// pending collection, which no longer contains the decided item. The
// backend is the source of truth for idempotency of repeated decisions
// on the same id.
type VerificationService struct {
	api api.PaymentAPI
}

func NewVerificationService(paymentAPI api.PaymentAPI) *VerificationService {
	return &VerificationService{api: paymentAPI}
}

func (s *VerificationService) Decide(ctx context.Context, id int, action api.VerifyAction) error {
	if id <= 0 {
		return ErrInvalidPaymentID
	}
	if action != api.VerifyApprove && action != api.VerifyReject {
		return ErrInvalidDecision
	}
	return s.api.VerifyPayment(ctx, id, action)
}
