package pricing

import (
	"math"
	"strings"
)

// AcademicLevel is the primary price driver, ordered from cheapest to
// most expensive.
type AcademicLevel string

const (
	LevelHighSchool    AcademicLevel = "high-school"
	LevelUndergraduate AcademicLevel = "undergraduate"
	LevelGraduate      AcademicLevel = "graduate"
	LevelPhD           AcademicLevel = "phd"
)

// DeadlineTier is the urgency bucket controlling the rush multiplier.
type DeadlineTier string

const (
	Deadline24Hours DeadlineTier = "24h"
	Deadline48Hours DeadlineTier = "48h"
	Deadline3Days   DeadlineTier = "3days"
	Deadline1Week   DeadlineTier = "1week"
	Deadline2Weeks  DeadlineTier = "2weeks"
)

// Quote is a transient pricing request. It is never persisted; the
// handler computes a price and discards it.
type Quote struct {
	Service  string        `json:"service"`
	Subject  string        `json:"subject,omitempty"`
	Level    AcademicLevel `json:"level"`
	Pages    int           `json:"pages"`
	Deadline DeadlineTier  `json:"deadline,omitempty"`
}

// basePerPage is the per-page price by academic level, in
// currency-agnostic units.
var basePerPage = map[AcademicLevel]float64{
	LevelHighSchool:    300,
	LevelUndergraduate: 450,
	LevelGraduate:      625,
	LevelPhD:           875,
}

// serviceMultipliers is sparse; anything not listed is 1.0.
var serviceMultipliers = map[string]float64{
	"thesis":             1.5,
	"dissertation":       1.8,
	"publication":        2.0,
	"teaching":           1.3,
	"plagiarism-removal": 0.7,
	"paper-prep":         0.8,
}

// subjectMultipliers is sparse; anything not listed is 1.0.
var subjectMultipliers = map[string]float64{
	"medicine":         1.3,
	"law":              1.2,
	"engineering":      1.2,
	"computer-science": 1.1,
	"mathematics":      1.1,
}

var deadlineMultipliers = map[DeadlineTier]float64{
	Deadline24Hours: 1.5,
	Deadline48Hours: 1.3,
	Deadline3Days:   1.2,
	Deadline1Week:   1.1,
	Deadline2Weeks:  1.0,
}

// pageMultiplier scales the per-page base so that 1 page costs exactly
// 1x and 10 pages cost exactly 5x. The sub-linear curve is the bulk
// discount baked into the published price list.
func pageMultiplier(pages int) float64 {
	return 1 + float64(pages-1)*4/9
}

// ComputePrice turns a quote request into a whole-unit price. Missing
// service, level, or pages yields 0; every other unknown input falls
// back to a 1.0 multiplier rather than an error. Rounding is half away
// from zero.
func ComputePrice(q Quote) int {
	base, ok := basePerPage[q.Level]
	if !ok || q.Pages < 1 || strings.TrimSpace(q.Service) == "" {
		return 0
	}

	svcMul := 1.0
	if m, ok := serviceMultipliers[normalize(q.Service)]; ok {
		svcMul = m
	}
	subjMul := 1.0
	if m, ok := subjectMultipliers[normalize(q.Subject)]; ok {
		subjMul = m
	}
	dlMul := 1.0
	if m, ok := deadlineMultipliers[q.Deadline]; ok {
		dlMul = m
	}

	price := base * pageMultiplier(q.Pages) * svcMul * subjMul * dlMul
	return int(math.Round(price))
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
