package enums

import "fmt"

// VisitType classifies a customer site visit.
type VisitType string

const (
	VisitTypeSalesCall VisitType = "SALES_CALL"
	VisitTypeFollowUp  VisitType = "FOLLOW_UP"
	VisitTypeDemo      VisitType = "DEMO"
	VisitTypeSupport   VisitType = "SUPPORT"
	VisitTypeOther     VisitType = "OTHER"
)

var validVisitTypes = []VisitType{
	VisitTypeSalesCall,
	VisitTypeFollowUp,
	VisitTypeDemo,
	VisitTypeSupport,
	VisitTypeOther,
}

// String implements fmt.Stringer.
func (v VisitType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VisitType.
func (v VisitType) IsValid() bool {
	for _, candidate := range validVisitTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVisitType converts raw input into a VisitType.
func ParseVisitType(value string) (VisitType, error) {
	for _, candidate := range validVisitTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid visit type %q", value)
}
