package enums

// Efficiency classifies a CLTV:CAC ratio against the configured threshold.
type Efficiency string

const (
	EfficiencyOptimal Efficiency = "optimal"
	EfficiencyGood    Efficiency = "good"
	EfficiencyPoor    Efficiency = "poor"
)

func (e Efficiency) Valid() bool {
	switch e {
	case EfficiencyOptimal, EfficiencyGood, EfficiencyPoor:
		return true
	}
	return false
}
