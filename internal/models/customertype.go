package models

// CustomerType identifies which side of the business a caller belongs to.
// There is no "unknown" value: every call resolves to retail or trade before
// it leaves the pipeline.
type CustomerType string

const (
	CustomerTypeRetail CustomerType = "retail"
	CustomerTypeTrade  CustomerType = "trade"
)

// LegClassification is the per-leg result of activity-detail classification,
// before call-level resolution. Unclassified legs exist (legs with no inbound
// token); unclassified calls do not.
type LegClassification int

const (
	LegUnclassified LegClassification = iota
	LegRetail
	LegTrade
)

func (c LegClassification) String() string {
	switch c {
	case LegRetail:
		return "retail"
	case LegTrade:
		return "trade"
	default:
		return "unclassified"
	}
}

// ResolveCustomerType reduces a call's leg classifications to the call-level
// customer type: any trade leg makes the call trade, otherwise it is retail.
// Pure function of its input; callers can compute it repeatedly without side
// effects.
func ResolveCustomerType(legs []LegClassification) CustomerType {
	for _, c := range legs {
		if c == LegTrade {
			return CustomerTypeTrade
		}
	}
	return CustomerTypeRetail
}
