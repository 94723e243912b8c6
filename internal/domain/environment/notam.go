package environment

import (
	"regexp"
	"strings"
	"time"
)

// NotamType classifies free-text NOTAMs
type NotamType string

const (
	NotamRunwayClosure NotamType = "runway_closure"
	NotamFuelOutage    NotamType = "fuel_outage"
	NotamTFR           NotamType = "tfr"
	NotamNavAid        NotamType = "nav_aid"
	NotamOther         NotamType = "other"
)

// Severity grades a NOTAM alert
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityCaution  Severity = "caution"
	SeverityCritical Severity = "critical"
)

// ParseSeverity maps a source supplied severity, empty when unrecognized
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityInfo:
		return SeverityInfo
	case SeverityCaution:
		return SeverityCaution
	case SeverityCritical:
		return SeverityCritical
	}
	return ""
}

// RawNotam is an unclassified NOTAM as a source returns it
type RawNotam struct {
	NotamID        string
	ICAO           string
	Text           string
	Severity       string
	Source         string
	EffectiveStart *time.Time
	EffectiveEnd   *time.Time
}

// NotamAlert is a classified NOTAM
type NotamAlert struct {
	NotamID        string     `json:"notam_id"`
	ICAO           string     `json:"icao"`
	Type           NotamType  `json:"type"`
	Severity       Severity   `json:"severity"`
	Text           string     `json:"text"`
	Source         string     `json:"source"`
	EffectiveStart *time.Time `json:"effective_start,omitempty"`
	EffectiveEnd   *time.Time `json:"effective_end,omitempty"`
}

// TimeWindow bounds the NOTAM query to the flying period
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the alert is effective at some point of the window.
// Open-ended alerts overlap everything after their start.
func (w TimeWindow) Overlaps(a NotamAlert) bool {
	if a.EffectiveStart != nil && a.EffectiveStart.After(w.End) {
		return false
	}
	if a.EffectiveEnd != nil && a.EffectiveEnd.Before(w.Start) {
		return false
	}
	return true
}

var (
	runwayPattern    = regexp.MustCompile(`\bRWY\b`)
	closedPattern    = regexp.MustCompile(`\bCLSD\b|\bCLOSED\b`)
	fuelPattern      = regexp.MustCompile(`\bFUEL\b`)
	outagePattern    = regexp.MustCompile(`\bNOT AVBL\b|\bUNAVBL\b|\bUNAVAILABLE\b|\bU/S\b|\bOTS\b`)
	jetFuelPattern   = regexp.MustCompile(`\bJET\b|\bJET-?A\b|\bJETA\b|\bALL\b|\bJET A\b`)
	tfrPattern       = regexp.MustCompile(`\bTFR\b|91\.141|99\.7|TEMPORARY FLIGHT RESTRICTION`)
	navAidPattern    = regexp.MustCompile(`\b(ILS|VOR|VORTAC|NDB|DME|LOC|GS|TACAN)\b`)
	navAidOutPattern = regexp.MustCompile(`\bU/S\b|\bOTS\b|\bUNMNT\b|\bNOT AVBL\b`)
)

// ClassifyNotam assigns a type by keyword and a severity, keeping a source severity when given
func ClassifyNotam(raw RawNotam) NotamAlert {
	text := strings.ToUpper(raw.Text)
	alert := NotamAlert{
		NotamID:        raw.NotamID,
		ICAO:           strings.ToUpper(strings.TrimSpace(raw.ICAO)),
		Text:           raw.Text,
		Source:         raw.Source,
		EffectiveStart: raw.EffectiveStart,
		EffectiveEnd:   raw.EffectiveEnd,
	}

	var derived Severity
	switch {
	case runwayPattern.MatchString(text) && closedPattern.MatchString(text):
		alert.Type, derived = NotamRunwayClosure, SeverityCritical
	case fuelPattern.MatchString(text) && outagePattern.MatchString(text):
		alert.Type, derived = NotamFuelOutage, SeverityCaution
		if jetFuelPattern.MatchString(text) {
			derived = SeverityCritical
		}
	case tfrPattern.MatchString(text):
		alert.Type, derived = NotamTFR, SeverityCritical
	case navAidPattern.MatchString(text) && navAidOutPattern.MatchString(text):
		alert.Type, derived = NotamNavAid, SeverityCaution
	default:
		alert.Type, derived = NotamOther, SeverityInfo
	}

	alert.Severity = ParseSeverity(raw.Severity)
	if alert.Severity == "" {
		alert.Severity = derived
	}
	return alert
}

// DedupeNotams keeps the first alert per NOTAM id, preserving order. Alerts without an id are kept.
func DedupeNotams(lists ...[]NotamAlert) []NotamAlert {
	seen := make(map[string]bool)
	out := make([]NotamAlert, 0)
	for _, list := range lists {
		for _, a := range list {
			if a.NotamID != "" {
				if seen[a.NotamID] {
					continue
				}
				seen[a.NotamID] = true
			}
			out = append(out, a)
		}
	}
	return out
}
