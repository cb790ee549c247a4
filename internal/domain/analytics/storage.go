package analytics

import (
	"strings"
	"time"
)

// ActionRow is one object-storage operation bucket.
type ActionRow struct {
	ActionType   string `json:"actionType"`
	ActionStatus string `json:"actionStatus"`
	Requests     int64  `json:"requests"`
}

// StorageTotals summarises operation counts.
type StorageTotals struct {
	Requests    int64 `json:"requests"`
	GetRequests int64 `json:"getRequests"`
	PutRequests int64 `json:"putRequests"`
}

// StorageSnapshot is the latest bucket size sample.
type StorageSnapshot struct {
	ObjectCount  int64 `json:"objectCount"`
	UploadCount  int64 `json:"uploadCount"`
	PayloadSize  int64 `json:"payloadSize"`
	MetadataSize int64 `json:"metadataSize"`
}

// CountryRow is a country traffic row for the storage view.
type CountryRow struct {
	Country  string `json:"country"`
	Requests int64  `json:"requests"`
}

// StorageRange describes the storage stats window.
type StorageRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// StorageStats is the storage-usage summary.
type StorageStats struct {
	Range        StorageRange     `json:"range"`
	Totals       StorageTotals    `json:"totals"`
	ByAction     []ActionRow      `json:"byAction"`
	Storage      *StorageSnapshot `json:"storage"`
	TopCountries []CountryRow     `json:"topCountries"`
}

// StorageTotalsFrom sums operation rows. GET and PUT accept both the bare verb
// and the S3-style operation names (GetObject, PutObject).
func StorageTotalsFrom(rows []ActionRow) StorageTotals {
	var t StorageTotals
	for _, r := range rows {
		t.Requests += r.Requests
		switch {
		case hasActionPrefix(r.ActionType, "Get"):
			t.GetRequests += r.Requests
		case hasActionPrefix(r.ActionType, "Put"):
			t.PutRequests += r.Requests
		}
	}
	return t
}

func hasActionPrefix(action, verb string) bool {
	return strings.EqualFold(action, verb) || strings.HasPrefix(action, verb)
}
