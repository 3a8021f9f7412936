package models

import (
	"strings"

	dErrors "staywatch/pkg/domain-errors"
)

// RiskLevel is the notification tier derived from days used.
type RiskLevel string

const (
	RiskNone   RiskLevel = "NONE"
	RiskYellow RiskLevel = "YELLOW"
	RiskOrange RiskLevel = "ORANGE"
	RiskRed    RiskLevel = "RED"
)

// IsValid reports whether r is one of the persisted alert levels.
// RiskNone classifies but is never stored on an alert.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskYellow, RiskOrange, RiskRed:
		return true
	}
	return false
}

// Severity orders levels for sorting; higher is worse.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskYellow:
		return 1
	case RiskOrange:
		return 2
	case RiskRed:
		return 3
	}
	return 0
}

// ParseRiskLevel accepts a persisted level, case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "risk_level must be one of YELLOW, ORANGE, RED")
	}
	return r, nil
}

// DisplayTier is the interactive-view classification derived from days remaining.
type DisplayTier string

const (
	DisplayGreen DisplayTier = "GREEN"
	DisplayAmber DisplayTier = "AMBER"
	DisplayRed   DisplayTier = "RED"
)
