package window

import (
	"fmt"

	"staywatch/internal/compliance/models"
	dErrors "staywatch/pkg/domain-errors"
)

// DisplayPolicy classifies days remaining for interactive views.
// Thresholds are operator-configurable.
type DisplayPolicy struct {
	GreenThreshold int
	AmberThreshold int
}

// DefaultDisplayPolicy is used when no thresholds are configured.
func DefaultDisplayPolicy() DisplayPolicy {
	return DisplayPolicy{GreenThreshold: 30, AmberThreshold: 10}
}

// NewDisplayPolicy validates green >= amber.
func NewDisplayPolicy(green, amber int) (DisplayPolicy, error) {
	p := DisplayPolicy{GreenThreshold: green, AmberThreshold: amber}
	if err := p.Validate(); err != nil {
		return DisplayPolicy{}, err
	}
	return p, nil
}

func (p DisplayPolicy) Validate() error {
	if p.GreenThreshold < p.AmberThreshold {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("green threshold %d must not be below amber threshold %d", p.GreenThreshold, p.AmberThreshold))
	}
	return nil
}

// Classify maps days remaining to a display tier.
func (p DisplayPolicy) Classify(remaining int) models.DisplayTier {
	switch {
	case remaining >= p.GreenThreshold:
		return models.DisplayGreen
	case remaining >= p.AmberThreshold:
		return models.DisplayAmber
	default:
		return models.DisplayRed
	}
}

// Notification thresholds on days used. These are fixed, not configurable.
const (
	YellowThreshold = 75
	OrangeThreshold = 85
	RedThreshold    = 90
)

// NotificationPolicy classifies days used for the alert state machine.
type NotificationPolicy struct{}

// Classify maps days used to a notify level, RiskNone below the yellow threshold.
func (NotificationPolicy) Classify(used int) models.RiskLevel {
	switch {
	case used >= RedThreshold:
		return models.RiskRed
	case used >= OrangeThreshold:
		return models.RiskOrange
	case used >= YellowThreshold:
		return models.RiskYellow
	default:
		return models.RiskNone
	}
}
