package analytics

import (
	"sort"
	"strings"
)

// Top-N caps applied after merging breakdowns.
const (
	TopGeo    = 50
	TopClient = 20
)

// UnknownName replaces empty or missing dimension values.
const UnknownName = "Unknown"

// Totals is a visits/requests pair.
type Totals struct {
	Visits   int64 `json:"visits"`
	Requests int64 `json:"requests"`
}

// Add returns t + o.
func (t Totals) Add(o Totals) Totals {
	return Totals{Visits: t.Visits + o.Visits, Requests: t.Requests + o.Requests}
}

// Row is one aggregated breakdown entry.
type Row struct {
	Name     string `json:"name"`
	Visits   int64  `json:"visits"`
	Requests int64  `json:"requests"`
}

// SeriesPoint is one time bucket.
type SeriesPoint struct {
	Bucket   string `json:"bucket"`
	Visits   int64  `json:"visits"`
	Requests int64  `json:"requests"`
}

// Breakdowns holds the per-dimension rows of a query.
type Breakdowns struct {
	Countries        []Row `json:"countries"`
	Cities           []Row `json:"cities"`
	Browsers         []Row `json:"browsers"`
	OperatingSystems []Row `json:"operatingSystems"`
}

// ChunkResult is everything one window query returns.
type ChunkResult struct {
	Totals Totals        `json:"totals"`
	Series []SeriesPoint `json:"series"`
	Breakdowns
}

// Merge folds chunk results into one: totals summed, series merged by bucket,
// breakdowns merged by name and capped. The result never contains nil slices.
func Merge(chunks []ChunkResult) ChunkResult {
	var (
		totals                            Totals
		series                            [][]SeriesPoint
		countries, cities, browsers, osys [][]Row
	)
	for _, c := range chunks {
		totals = totals.Add(c.Totals)
		series = append(series, c.Series)
		countries = append(countries, c.Countries)
		cities = append(cities, c.Cities)
		browsers = append(browsers, c.Browsers)
		osys = append(osys, c.OperatingSystems)
	}

	return ChunkResult{
		Totals: totals,
		Series: MergeSeries(series...),
		Breakdowns: Breakdowns{
			Countries:        MergeRows(TopGeo, countries...),
			Cities:           MergeRows(TopGeo, cities...),
			Browsers:         MergeRows(TopClient, browsers...),
			OperatingSystems: MergeRows(TopClient, osys...),
		},
	}
}

// MergeSeries sums points sharing a bucket and returns them in ascending bucket order.
// Buckets are ISO-8601 strings, so lexical order is chronological.
func MergeSeries(parts ...[]SeriesPoint) []SeriesPoint {
	byBucket := make(map[string]*SeriesPoint)
	for _, part := range parts {
		for _, p := range part {
			if existing, ok := byBucket[p.Bucket]; ok {
				existing.Visits += p.Visits
				existing.Requests += p.Requests
				continue
			}
			cp := p
			byBucket[p.Bucket] = &cp
		}
	}

	out := make([]SeriesPoint, 0, len(byBucket))
	for _, p := range byBucket {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}

// MergeRows sums rows sharing a name, orders by visits desc (then requests desc,
// then name asc), and truncates to limit. A limit <= 0 keeps every row.
func MergeRows(limit int, parts ...[]Row) []Row {
	byName := make(map[string]*Row)
	for _, part := range parts {
		for _, r := range part {
			name := NormalizeName(r.Name)
			if existing, ok := byName[name]; ok {
				existing.Visits += r.Visits
				existing.Requests += r.Requests
				continue
			}
			byName[name] = &Row{Name: name, Visits: r.Visits, Requests: r.Requests}
		}
	}

	out := make([]Row, 0, len(byName))
	for _, r := range byName {
		out = append(out, *r)
	}
	SortRows(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SortRows orders rows by visits desc, requests desc, name asc.
func SortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Visits != b.Visits {
			return a.Visits > b.Visits
		}
		if a.Requests != b.Requests {
			return a.Requests > b.Requests
		}
		return a.Name < b.Name
	})
}

// NormalizeName trims name and substitutes UnknownName for blanks.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownName
	}
	return name
}
