package enums

// SegmentType is the closed set of customer segments tracked per client.
type SegmentType string

const (
	SegmentSMB        SegmentType = "SMB"
	SegmentMidMarket  SegmentType = "Mid-Market"
	SegmentEnterprise SegmentType = "Enterprise"
)

// AllSegmentTypes returns the segments in their canonical display order.
func AllSegmentTypes() []SegmentType {
	return []SegmentType{SegmentSMB, SegmentMidMarket, SegmentEnterprise}
}

func (s SegmentType) Valid() bool {
	switch s {
	case SegmentSMB, SegmentMidMarket, SegmentEnterprise:
		return true
	}
	return false
}

func (s SegmentType) String() string {
	return string(s)
}
