package sbe

// Enum fields are single bytes carrying FIX character codes. The zero byte is
// the null value for every enum except OrdRejReason, whose null is 0xFF.

type Side uint8

const (
	SideNull Side = 0
	SideBuy  Side = '1'
	SideSell Side = '2'
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	}
	return "NullVal"
}

// Opposite returns the other trading side. Null maps to null.
func (s Side) Opposite() Side {
	switch s {
	case SideBuy:
		return SideSell
	case SideSell:
		return SideBuy
	}
	return SideNull
}

type OrdType uint8

const (
	OrdTypeNull   OrdType = 0
	OrdTypeMarket OrdType = '1'
	OrdTypeLimit  OrdType = '2'
)

func (t OrdType) String() string {
	switch t {
	case OrdTypeMarket:
		return "Market"
	case OrdTypeLimit:
		return "Limit"
	}
	return "NullVal"
}

type ExecType uint8

const (
	ExecTypeNull     ExecType = 0
	ExecTypeNew      ExecType = '0'
	ExecTypeCanceled ExecType = '4'
	ExecTypeRejected ExecType = '8'
	ExecTypeTrade    ExecType = 'F'
)

func (e ExecType) String() string {
	switch e {
	case ExecTypeNew:
		return "New"
	case ExecTypeCanceled:
		return "Canceled"
	case ExecTypeRejected:
		return "Rejected"
	case ExecTypeTrade:
		return "Trade"
	}
	return "NullVal"
}

type OrdStatus uint8

const (
	OrdStatusNull            OrdStatus = 0
	OrdStatusNew             OrdStatus = '0'
	OrdStatusPartiallyFilled OrdStatus = '1'
	OrdStatusFilled          OrdStatus = '2'
	OrdStatusCanceled        OrdStatus = '4'
	OrdStatusRejected        OrdStatus = '8'
)

func (s OrdStatus) String() string {
	switch s {
	case OrdStatusNew:
		return "New"
	case OrdStatusPartiallyFilled:
		return "PartiallyFilled"
	case OrdStatusFilled:
		return "Filled"
	case OrdStatusCanceled:
		return "Canceled"
	case OrdStatusRejected:
		return "Rejected"
	}
	return "NullVal"
}

type OrdRejReason uint8

const (
	OrdRejReasonUnknownOrder   OrdRejReason = 5
	OrdRejReasonDuplicateOrder OrdRejReason = 6
	OrdRejReasonStaleOrder     OrdRejReason = 8
	OrdRejReasonOther          OrdRejReason = 99
	OrdRejReasonNull           OrdRejReason = 0xFF
)

func (r OrdRejReason) String() string {
	switch r {
	case OrdRejReasonUnknownOrder:
		return "UnknownOrder"
	case OrdRejReasonDuplicateOrder:
		return "DuplicateOrder"
	case OrdRejReasonStaleOrder:
		return "StaleOrder"
	case OrdRejReasonOther:
		return "Other"
	}
	return "NullVal"
}

type CxlRejReason uint8

const (
	CxlRejReasonNull             CxlRejReason = 0
	CxlRejReasonTooLateToCancel  CxlRejReason = '0'
	CxlRejReasonUnknownOrder     CxlRejReason = '1'
	CxlRejReasonDuplicateClOrdID CxlRejReason = '6'
)

func (r CxlRejReason) String() string {
	switch r {
	case CxlRejReasonTooLateToCancel:
		return "TooLateToCancel"
	case CxlRejReasonUnknownOrder:
		return "UnknownOrder"
	case CxlRejReasonDuplicateClOrdID:
		return "DuplicateClOrdID"
	}
	return "NullVal"
}

type CxlRejResponseTo uint8

const (
	CxlRejResponseToNull               CxlRejResponseTo = 0
	CxlRejResponseToOrderCancelRequest CxlRejResponseTo = '1'
	CxlRejResponseToOrderCancelReplace CxlRejResponseTo = '2'
)

func (r CxlRejResponseTo) String() string {
	switch r {
	case CxlRejResponseToOrderCancelRequest:
		return "OrderCancelRequest"
	case CxlRejResponseToOrderCancelReplace:
		return "OrderCancelReplaceRequest"
	}
	return "NullVal"
}
