// Package analytics holds the provider-agnostic model of the traffic summary:
// query windows and their chunking, the dimension capability descriptor, merge
// rules, and the result shapes rendered by the dashboard and JSON endpoints.
package analytics

import (
	"strings"
	"time"
)

// Target selects which configured hostname a summary describes.
type Target string

// Known targets.
const (
	TargetSite     Target = "site"
	TargetScreener Target = "screener"
)

// ParseTarget maps a query value to a Target, defaulting to TargetSite.
func ParseTarget(raw string) Target {
	switch Target(strings.ToLower(strings.TrimSpace(raw))) {
	case TargetScreener:
		return TargetScreener
	default:
		return TargetSite
	}
}

// Range describes the windows a summary covers.
type Range struct {
	Start24h    time.Time `json:"start24h"`
	StartWindow time.Time `json:"startWindow"`
	End         time.Time `json:"end"`
	Days        int       `json:"days"`
	Chunks      int       `json:"chunks"`
}

// Summary is the uniform aggregator output. Breakdown lists are always non-nil.
type Summary struct {
	Target           Target        `json:"target"`
	Host             string        `json:"host"`
	Range            Range         `json:"range"`
	Totals24h        Totals        `json:"totals24h"`
	TotalsWindow     Totals        `json:"totalsWindow"`
	Series24h        []SeriesPoint `json:"series24h"`
	SeriesWindow     []SeriesPoint `json:"seriesWindow"`
	Countries        []Row         `json:"countries"`
	Cities           []Row         `json:"cities"`
	Browsers         []Row         `json:"browsers"`
	OperatingSystems []Row         `json:"operatingSystems"`
	Capabilities     []string      `json:"capabilities"`
	CapabilitySource Source        `json:"capabilitySource"`
	GeneratedAt      time.Time     `json:"generatedAt"`
}

// EmptySummary returns the zeroed shape rendered when aggregation fails.
func EmptySummary(target Target, days int) Summary {
	s := Summary{Target: target, Range: Range{Days: days}}
	s.Normalize()
	return s
}

// Normalize replaces nil slices with empty ones so callers never branch on presence.
func (s *Summary) Normalize() {
	if s.Series24h == nil {
		s.Series24h = []SeriesPoint{}
	}
	if s.SeriesWindow == nil {
		s.SeriesWindow = []SeriesPoint{}
	}
	if s.Countries == nil {
		s.Countries = []Row{}
	}
	if s.Cities == nil {
		s.Cities = []Row{}
	}
	if s.Browsers == nil {
		s.Browsers = []Row{}
	}
	if s.OperatingSystems == nil {
		s.OperatingSystems = []Row{}
	}
	if s.Capabilities == nil {
		s.Capabilities = []string{}
	}
}

// Locations merges cities (or countries when no city data exists) for the dashboard's
// "top locations" panel, capped at limit.
func (s *Summary) Locations(limit int) []Row {
	rows := s.Cities
	if len(rows) == 0 {
		rows = s.Countries
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
