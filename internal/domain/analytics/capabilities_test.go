package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackCapabilities(t *testing.T) {
	c := FallbackCapabilities()
	assert.Equal(t, SourceFallback, c.Source)
	assert.Equal(t, []string{FieldDatetimeDay, FieldDatetimeHour}, c.Fields())

	_, ok := c.Field(DimensionCountry)
	assert.False(t, ok)
	f, ok := c.Field(DimensionDay)
	assert.True(t, ok)
	assert.Equal(t, FieldDatetimeDay, f)
}

func TestCapabilities_FieldPrefersFirstSupportedCandidate(t *testing.T) {
	c := NewCapabilities(SourceProbe, []string{"clientBrowserName", "userAgentOS", "clientOSName", "unrelated"})

	browser, ok := c.Field(DimensionBrowser)
	assert.True(t, ok)
	assert.Equal(t, "clientBrowserName", browser)

	osField, ok := c.Field(DimensionOS)
	assert.True(t, ok)
	assert.Equal(t, "userAgentOS", osField)

	_, recorded := c.Supported["unrelated"]
	assert.False(t, recorded, "non-candidate fields are not recorded")
	assert.False(t, c.Empty())
}

func TestCapabilities_Empty(t *testing.T) {
	assert.True(t, NewCapabilities(SourceIntrospection, nil).Empty())
	assert.Equal(t, []string{}, NewCapabilities(SourceIntrospection, nil).Fields())
}

func TestCandidateFields(t *testing.T) {
	fields := CandidateFields()
	assert.Contains(t, fields, "clientCountryName")
	assert.Contains(t, fields, "clientCityName")
	assert.Contains(t, fields, "userAgentBrowser")
	assert.Contains(t, fields, "clientOSName")
	assert.Equal(t, FieldDatetimeHour, fields[0])
}

func TestParseTarget(t *testing.T) {
	assert.Equal(t, TargetSite, ParseTarget(""))
	assert.Equal(t, TargetSite, ParseTarget("bogus"))
	assert.Equal(t, TargetScreener, ParseTarget(" Screener "))
}

func TestStorageTotalsFrom(t *testing.T) {
	totals := StorageTotalsFrom([]ActionRow{
		{ActionType: "GetObject", Requests: 10},
		{ActionType: "GET", Requests: 2},
		{ActionType: "PutObject", Requests: 3},
		{ActionType: "ListObjects", Requests: 4},
	})
	assert.Equal(t, StorageTotals{Requests: 19, GetRequests: 12, PutRequests: 3}, totals)
}

func TestSummaryNormalize(t *testing.T) {
	s := EmptySummary(TargetScreener, 14)
	assert.NotNil(t, s.Countries)
	assert.NotNil(t, s.SeriesWindow)
	assert.NotNil(t, s.Capabilities)
	assert.Equal(t, 14, s.Range.Days)

	s.Countries = []Row{{Name: "GB"}}
	assert.Equal(t, []Row{{Name: "GB"}}, s.Locations(8))
	s.Cities = []Row{{Name: "London"}, {Name: "Leeds"}}
	assert.Equal(t, []Row{{Name: "London"}}, s.Locations(1))
}
