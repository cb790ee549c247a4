package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crakhack/crakhack-web/internal/domain/analytics"
)

type fakeAnalytics struct {
	target analytics.Target
	days   int
	err    error
}

func (f *fakeAnalytics) Summary(_ context.Context, target analytics.Target, days int) (analytics.Summary, error) {
	f.target, f.days = target, days
	if f.err != nil {
		return analytics.Summary{}, f.err
	}
	s := analytics.EmptySummary(target, days)
	s.Host = "screener.example.com"
	return s, nil
}

func (f *fakeAnalytics) Capabilities(context.Context) (analytics.Capabilities, error) {
	return analytics.FallbackCapabilities(), nil
}

type fakeStorage struct{ days int }

func (f *fakeStorage) Stats(_ context.Context, days int) (analytics.StorageStats, error) {
	f.days = days
	return analytics.StorageStats{}, nil
}

func execute(t *testing.T, svc adminServices, loadErr error, args ...string) (string, error) {
	t.Helper()
	load := func() (adminServices, error) { return svc, loadErr }
	cmd := newRootCmd(load)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyticsCommand(t *testing.T) {
	fa := &fakeAnalytics{}
	out, err := execute(t, adminServices{Analytics: fa}, nil, "analytics", "--target", "screener", "--days", "14")
	require.NoError(t, err)

	assert.Equal(t, analytics.TargetScreener, fa.target)
	assert.Equal(t, 14, fa.days)
	assert.Contains(t, out, `"host": "screener.example.com"`)
}

func TestAnalyticsCommand_Error(t *testing.T) {
	fa := &fakeAnalytics{err: errors.New("boom")}
	_, err := execute(t, adminServices{Analytics: fa}, nil, "analytics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch summary")
	assert.Equal(t, analytics.TargetSite, fa.target)
	assert.Equal(t, analytics.DefaultDays, fa.days)
}

func TestCapabilitiesCommand(t *testing.T) {
	out, err := execute(t, adminServices{Analytics: &fakeAnalytics{}}, nil, "capabilities")
	require.NoError(t, err)
	assert.Contains(t, out, `"source": "fallback"`)
}

func TestStorageCommand(t *testing.T) {
	fs := &fakeStorage{}
	_, err := execute(t, adminServices{Storage: fs}, nil, "storage", "--days", "30")
	require.NoError(t, err)
	assert.Equal(t, 30, fs.days)
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, adminServices{}, nil, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "complete")

	_, err = execute(t, adminServices{Missing: []string{"R2_BUCKET_NAME"}}, nil, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "R2_BUCKET_NAME")
}

func TestLoadError(t *testing.T) {
	_, err := execute(t, adminServices{}, errors.New("parse config: bad"), "storage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
