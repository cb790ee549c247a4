package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyRelativeTime(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	assert.Equal(t, "just now", FriendlyRelativeTime(fixed.Add(-10*time.Second)))
	assert.Equal(t, "just now", FriendlyRelativeTime(fixed.Add(time.Hour)))
	assert.Equal(t, "1 minute ago", FriendlyRelativeTime(fixed.Add(-time.Minute)))
	assert.Equal(t, "5 minutes ago", FriendlyRelativeTime(fixed.Add(-5*time.Minute)))
	assert.Equal(t, "3 hours ago", FriendlyRelativeTime(fixed.Add(-3*time.Hour)))
	assert.Equal(t, "2 days ago", FriendlyRelativeTime(fixed.Add(-49*time.Hour)))
	assert.Equal(t, "Oct 1, 2026 12:00 UTC", FriendlyRelativeTime(fixed.AddDate(0, 0, -17)))
}

func TestFormatFriendlyDateTime(t *testing.T) {
	assert.Empty(t, FormatFriendlyDateTime(time.Time{}))

	local := time.Date(2026, 10, 18, 9, 5, 0, 0, time.FixedZone("EDT", -4*3600))
	assert.Equal(t, "Oct 18, 2026 13:05 UTC", FormatFriendlyDateTime(local))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "abc", TruncateWithEllipsis("abc", 3))
	assert.Equal(t, "ab…", TruncateWithEllipsis("abcd", 3))
	assert.Equal(t, "…", TruncateWithEllipsis("abcd", 1))
	assert.Equal(t, "ré…", TruncateWithEllipsis("résumé", 3))
}
