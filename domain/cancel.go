package domain

import "falcon-exchange/sbe"

// CancelRequest is the decoded form of an OrderCancelRequest. The lookup key
// for the order being cancelled is (Account, OrigClOrdID); Side is carried on
// the wire but the lookup is side-agnostic.
type CancelRequest struct {
	OrigClOrdID sbe.UUID
	ClOrdID     sbe.UUID
	Account     sbe.UUID
	Side        sbe.Side
}
