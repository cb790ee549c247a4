package cloudflare

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
)

const zonePath = "viewer.zones[0]"

func search(expr string, data any) (any, error) {
	v, err := jmespath.Search(expr, data)
	if err != nil {
		return nil, fmt.Errorf("jmespath %q: %w", expr, err)
	}
	return v, nil
}

// decodeWindow maps a window response onto a ChunkResult. Missing aliases decode
// as empty lists and null sums as zero.
func decodeWindow(data any, wf windowFields) (analytics.ChunkResult, error) {
	var out analytics.ChunkResult

	totals, err := decodeRows(data, aliasTotals, "")
	if err != nil {
		return out, err
	}
	for _, r := range totals {
		out.Totals = out.Totals.Add(analytics.Totals{Visits: r.Visits, Requests: r.Requests})
	}

	out.Series = []analytics.SeriesPoint{}
	if wf.series != "" {
		rows, err := decodeRows(data, aliasSeries, wf.series)
		if err != nil {
			return out, err
		}
		for _, r := range rows {
			if r.Name == "" {
				continue
			}
			out.Series = append(out.Series, analytics.SeriesPoint{Bucket: r.Name, Visits: r.Visits, Requests: r.Requests})
		}
	}

	targets := map[string]*[]analytics.Row{
		aliasCountries:        &out.Countries,
		aliasCities:           &out.Cities,
		aliasBrowsers:         &out.Browsers,
		aliasOperatingSystems: &out.OperatingSystems,
	}
	for alias, dst := range targets {
		*dst = []analytics.Row{}
		field, ok := wf.breakdowns[alias]
		if !ok {
			continue
		}
		rows, err := decodeRows(data, alias, field)
		if err != nil {
			return out, err
		}
		for _, r := range rows {
			r.Name = analytics.NormalizeName(r.Name)
			*dst = append(*dst, r)
		}
	}
	return out, nil
}

// decodeRows projects zones[0].<alias> into rows. field names the dimension
// providing Row.Name; an empty field leaves names blank.
func decodeRows(data any, alias, field string) ([]analytics.Row, error) {
	nameExpr := "`null`"
	if field != "" {
		nameExpr = "dimensions." + field
	}
	expr := fmt.Sprintf("%s.%s[].{name: %s, visits: sum.visits, requests: count}", zonePath, alias, nameExpr)
	v, err := search(expr, data)
	if err != nil {
		return nil, err
	}
	items, _ := v.([]any)
	rows := make([]analytics.Row, 0, len(items))
	for _, it := range items {
		m, _ := it.(map[string]any)
		rows = append(rows, analytics.Row{
			Name:     toString(m["name"]),
			Visits:   toInt64(m["visits"]),
			Requests: toInt64(m["requests"]),
		})
	}
	return rows, nil
}

func decodeFieldNames(data any) ([]string, error) {
	v, err := search(`"__type".fields[].name`, data)
	if err != nil {
		return nil, err
	}
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := toString(it); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func decodeStorage(data any) (analytics.StorageStats, error) {
	out := analytics.StorageStats{
		ByAction:     []analytics.ActionRow{},
		TopCountries: []analytics.CountryRow{},
	}

	ops, err := search(
		"viewer.accounts[0].r2OperationsAdaptiveGroups[].{actionType: dimensions.actionType, actionStatus: dimensions.actionStatus, requests: sum.requests}",
		data,
	)
	if err != nil {
		return out, err
	}
	for _, it := range asSlice(ops) {
		m, _ := it.(map[string]any)
		out.ByAction = append(out.ByAction, analytics.ActionRow{
			ActionType:   toString(m["actionType"]),
			ActionStatus: toString(m["actionStatus"]),
			Requests:     toInt64(m["requests"]),
		})
	}
	out.Totals = analytics.StorageTotalsFrom(out.ByAction)

	snap, err := search("viewer.accounts[0].r2StorageAdaptiveGroups[0].max", data)
	if err != nil {
		return out, err
	}
	if m, ok := snap.(map[string]any); ok {
		out.Storage = &analytics.StorageSnapshot{
			ObjectCount:  toInt64(m["objectCount"]),
			UploadCount:  toInt64(m["uploadCount"]),
			PayloadSize:  toInt64(m["payloadSize"]),
			MetadataSize: toInt64(m["metadataSize"]),
		}
	}

	geo, err := search(
		zonePath+".httpRequestsAdaptiveGroups[].{country: dimensions.clientCountryName, requests: sum.requests}",
		data,
	)
	if err != nil {
		return out, err
	}
	for _, it := range asSlice(geo) {
		m, _ := it.(map[string]any)
		out.TopCountries = append(out.TopCountries, analytics.CountryRow{
			Country:  analytics.NormalizeName(toString(m["country"])),
			Requests: toInt64(m["requests"]),
		})
	}
	return out, nil
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// toInt64 treats null, missing, and non-numeric values as zero.
func toInt64(v any) int64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int64(t)
	case int:
		return int64(t)
	case int64:
		return t
	case string:
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return int64(n)
	case interface{ Int64() (int64, error) }:
		n, err := t.Int64()
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
