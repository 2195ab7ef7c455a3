package kpi

import (
	"errors"
	"strings"
	"time"
)

// Domain errors.
var (
	ErrEmptyName = errors.New("kpi name cannot be empty")
)

// HistoryPoint is one append-only measurement in a KPI's history.
type HistoryPoint struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Actual   float64   `json:"actual"`
	Target   *float64  `json:"target,omitempty"`
	LoggedBy string    `json:"logged_by"`
}

// Kpi holds state for one tracked indicator. LowerIsBetter is the sole
// source of truth for direction: an attrition KPI meeting its target
// means Actual <= Target, not >=.
type Kpi struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Target        float64        `json:"target"`
	Actual        float64        `json:"actual"`
	LowerIsBetter bool           `json:"lower_is_better"`
	History       []HistoryPoint `json:"history"`
}

// Validate checks if the Kpi has valid data.
// PRE: Kpi struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (k *Kpi) Validate() error {
	if strings.TrimSpace(k.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// MeetsTarget reports whether the current Actual satisfies Target,
// respecting the LowerIsBetter direction.
// INVARIANT: no fields are mutated
func (k *Kpi) MeetsTarget() bool {
	if k.LowerIsBetter {
		return k.Actual <= k.Target
	}
	return k.Actual >= k.Target
}

// Attainment returns Actual as a fraction of Target, direction-adjusted
// so that 1.0 always means "on target" and larger is better. A zero
// divisor yields 0.
func (k *Kpi) Attainment() float64 {
	if k.LowerIsBetter {
		if k.Actual == 0 {
			return 0
		}
		return k.Target / k.Actual
	}
	if k.Target == 0 {
		return 0
	}
	return k.Actual / k.Target
}

// AddHistory appends a measurement and rolls Actual forward to it.
// PRE: id is a fresh entity ID
// POST: point appended, Actual updated; prior history untouched
func (k *Kpi) AddHistory(id string, date time.Time, actual float64, target *float64, loggedBy string) {
	k.History = append(k.History, HistoryPoint{
		ID:       id,
		Date:     date,
		Actual:   actual,
		Target:   target,
		LoggedBy: loggedBy,
	})
	k.Actual = actual
	if target != nil {
		k.Target = *target
	}
}
