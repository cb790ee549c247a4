package analytics

import "sort"

// Dimension is a logical grouping axis; each maps to one or more provider field names.
type Dimension string

// Dimensions the aggregator knows how to query.
const (
	DimensionHour    Dimension = "hour"
	DimensionDay     Dimension = "day"
	DimensionCountry Dimension = "country"
	DimensionCity    Dimension = "city"
	DimensionBrowser Dimension = "browser"
	DimensionOS      Dimension = "os"
)

// Time bucket fields assumed present when discovery fails outright.
const (
	FieldDatetimeHour = "datetimeHour"
	FieldDatetimeDay  = "datetimeDay"
)

// Source records how a capability set was obtained.
type Source string

// Discovery sources, in order of preference.
const (
	SourceIntrospection Source = "introspection"
	SourceProbe         Source = "probe"
	SourceFallback      Source = "fallback"
)

//nolint:gochecknoglobals // static read-only lookup table
var candidates = map[Dimension][]string{
	DimensionHour:    {FieldDatetimeHour},
	DimensionDay:     {FieldDatetimeDay, "date"},
	DimensionCountry: {"clientCountryName"},
	DimensionCity:    {"clientCityName"},
	DimensionBrowser: {"userAgentBrowser", "clientBrowserName"},
	DimensionOS:      {"userAgentOS", "clientOSName"},
}

// Dimensions lists every dimension in a stable order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionHour, DimensionDay, DimensionCountry,
		DimensionCity, DimensionBrowser, DimensionOS,
	}
}

// CandidateFields returns every distinct candidate field in a stable order.
func CandidateFields() []string {
	var out []string
	for _, d := range Dimensions() {
		out = append(out, candidates[d]...)
	}
	return out
}

// Capabilities is the declarative {field -> supported} descriptor threaded into query building.
type Capabilities struct {
	Supported map[string]bool `json:"supported"`
	Source    Source          `json:"source"`
}

// NewCapabilities builds a descriptor from the set of fields the provider exposes.
// Only candidate fields are recorded; everything else is irrelevant to query building.
func NewCapabilities(source Source, available []string) Capabilities {
	present := make(map[string]struct{}, len(available))
	for _, f := range available {
		present[f] = struct{}{}
	}
	supported := make(map[string]bool)
	for _, f := range CandidateFields() {
		_, ok := present[f]
		supported[f] = ok
	}
	return Capabilities{Supported: supported, Source: source}
}

// FallbackCapabilities enables only the two universally available time buckets.
func FallbackCapabilities() Capabilities {
	return NewCapabilities(SourceFallback, []string{FieldDatetimeHour, FieldDatetimeDay})
}

// Field returns the first supported provider field for d.
func (c Capabilities) Field(d Dimension) (string, bool) {
	for _, f := range candidates[d] {
		if c.Supported[f] {
			return f, true
		}
	}
	return "", false
}

// Fields returns the supported field names, sorted.
func (c Capabilities) Fields() []string {
	out := make([]string, 0, len(c.Supported))
	for f, ok := range c.Supported {
		if ok {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// Empty reports whether nothing at all is supported.
func (c Capabilities) Empty() bool {
	for _, ok := range c.Supported {
		if ok {
			return false
		}
	}
	return true
}
