package cloudflare

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
)

// Result aliases in the window query document.
const (
	aliasTotals           = "totals"
	aliasSeries           = "series"
	aliasCountries        = "countries"
	aliasCities           = "cities"
	aliasBrowsers         = "browsers"
	aliasOperatingSystems = "operatingSystems"
)

const seriesLimit = 200

// Introspection looks for the grouped-dataset dimensions type under each of these names, in order.
//
//nolint:gochecknoglobals // static read-only lookup table
var dimensionTypeNames = []string{
	"ZoneHttpRequestsAdaptiveGroupsDimensions",
	"zoneHttpRequestsAdaptiveGroupsDimensions",
	"HttpRequestsAdaptiveGroupsDimensions",
}

var fieldNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type breakdownSpec struct {
	alias     string
	dimension analytics.Dimension
	limit     int
}

//nolint:gochecknoglobals // static read-only lookup table
var breakdownSpecs = []breakdownSpec{
	{aliasCountries, analytics.DimensionCountry, analytics.TopGeo},
	{aliasCities, analytics.DimensionCity, analytics.TopGeo},
	{aliasBrowsers, analytics.DimensionBrowser, analytics.TopClient},
	{aliasOperatingSystems, analytics.DimensionOS, analytics.TopClient},
}

const windowFilter = `{ datetime_geq: $start, datetime_lt: $end, clientRequestHTTPHost: $host }`

// windowFields resolves which field backs each alias for the given capabilities.
// Aliases whose dimension is unsupported are absent.
type windowFields struct {
	series     string
	breakdowns map[string]string
}

func resolveWindowFields(caps analytics.Capabilities, seriesDim analytics.Dimension) windowFields {
	wf := windowFields{breakdowns: make(map[string]string, len(breakdownSpecs))}
	if f, ok := caps.Field(seriesDim); ok {
		wf.series = f
	} else if f, ok := caps.Field(analytics.DimensionHour); ok {
		wf.series = f
	}
	for _, spec := range breakdownSpecs {
		if f, ok := caps.Field(spec.dimension); ok {
			wf.breakdowns[spec.alias] = f
		}
	}
	return wf
}

// BuildWindowQuery renders the single-chunk document. Blocks for unsupported
// dimensions are omitted entirely so the provider never sees an unknown field.
func BuildWindowQuery(caps analytics.Capabilities, seriesDim analytics.Dimension) string {
	return buildWindowQuery(resolveWindowFields(caps, seriesDim))
}

func buildWindowQuery(wf windowFields) string {
	var b strings.Builder
	b.WriteString("query WindowAnalytics($zoneTag: String!, $host: String!, $start: Time!, $end: Time!) {\n")
	b.WriteString("  viewer {\n    zones(filter: { zoneTag: $zoneTag }) {\n")

	writeGroup(&b, aliasTotals, 1, "", "")
	if wf.series != "" {
		writeGroup(&b, aliasSeries, seriesLimit, wf.series, wf.series+"_ASC")
	}
	for _, spec := range breakdownSpecs {
		if f, ok := wf.breakdowns[spec.alias]; ok {
			writeGroup(&b, spec.alias, spec.limit, f, "sum_visits_DESC")
		}
	}

	b.WriteString("    }\n  }\n}\n")
	return b.String()
}

func writeGroup(b *strings.Builder, alias string, limit int, field, orderBy string) {
	fmt.Fprintf(b, "      %s: httpRequestsAdaptiveGroups(\n        limit: %d\n", alias, limit)
	if orderBy != "" {
		fmt.Fprintf(b, "        orderBy: [%s]\n", orderBy)
	}
	fmt.Fprintf(b, "        filter: %s\n      ) {\n        count\n        sum { visits }\n", windowFilter)
	if field != "" {
		fmt.Fprintf(b, "        dimensions { %s }\n", field)
	}
	b.WriteString("      }\n")
}

// IntrospectionQuery lists the fields of a named type.
const IntrospectionQuery = `query DimensionFields($name: String!) {
  __type(name: $name) {
    fields { name }
  }
}
`

// BuildProbeQuery renders a minimal limit-1 query selecting only field.
func BuildProbeQuery(field string) (string, error) {
	if !fieldNameRE.MatchString(field) {
		return "", fmt.Errorf("invalid field name %q", field)
	}
	return fmt.Sprintf(`query ProbeField($zoneTag: String!, $start: Time!, $end: Time!) {
  viewer {
    zones(filter: { zoneTag: $zoneTag }) {
      probe: httpRequestsAdaptiveGroups(
        limit: 1
        filter: { datetime_geq: $start, datetime_lt: $end }
      ) {
        dimensions { %s }
      }
    }
  }
}
`, field), nil
}

// BuildStorageQuery renders the bucket usage document. The zone block is only
// included when includeGeo is set.
func BuildStorageQuery(includeGeo bool) string {
	var b strings.Builder
	b.WriteString("query StorageStats($accountTag: String!, $bucketName: String!, $start: Time!, $end: Time!")
	if includeGeo {
		b.WriteString(", $zoneTag: String!, $host: String!")
	}
	b.WriteString(`) {
  viewer {
    accounts(filter: { accountTag: $accountTag }) {
      r2OperationsAdaptiveGroups(
        limit: 1000
        filter: { datetime_geq: $start, datetime_leq: $end, bucketName: $bucketName }
      ) {
        dimensions { actionType actionStatus }
        sum { requests }
      }
      r2StorageAdaptiveGroups(
        limit: 1
        filter: { datetime_geq: $start, datetime_leq: $end, bucketName: $bucketName }
        orderBy: [datetime_DESC]
      ) {
        max { objectCount uploadCount payloadSize metadataSize }
      }
    }
`)
	if includeGeo {
		b.WriteString(`    zones(filter: { zoneTag: $zoneTag }) {
      httpRequestsAdaptiveGroups(
        limit: 25
        filter: { datetime_geq: $start, datetime_leq: $end, clientRequestHTTPHost: $host }
        orderBy: [sum_requests_DESC]
      ) {
        dimensions { clientCountryName }
        sum { requests }
      }
    }
`)
	}
	b.WriteString("  }\n}\n")
	return b.String()
}
