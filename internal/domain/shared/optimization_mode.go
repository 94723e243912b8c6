package shared

import (
	"fmt"
	"strings"
)

// OptimizationMode is the objective used to weight graph edges and score fuel stop candidates
type OptimizationMode string

const (
	ModeCost     OptimizationMode = "cost"
	ModeTime     OptimizationMode = "time"
	ModeBalanced OptimizationMode = "balanced"
)

// ParseOptimizationMode parses a mode name, case-insensitively
func ParseOptimizationMode(s string) (OptimizationMode, error) {
	switch OptimizationMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCost:
		return ModeCost, nil
	case ModeTime:
		return ModeTime, nil
	case ModeBalanced:
		return ModeBalanced, nil
	}
	return "", NewValidationError("optimization_mode", fmt.Sprintf("unknown mode %q (want cost, time or balanced)", s))
}

// Complement returns the mode used for the alternative plan.
// cost and time swap; balanced falls back to time.
func (m OptimizationMode) Complement() OptimizationMode {
	switch m {
	case ModeCost:
		return ModeTime
	case ModeTime:
		return ModeCost
	default:
		return ModeTime
	}
}

func (m OptimizationMode) IsValid() bool {
	return m == ModeCost || m == ModeTime || m == ModeBalanced
}

func (m OptimizationMode) String() string {
	return string(m)
}
