package core

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{int64(1234567), "1,234,567"},
		{int64(-98765), "-98,765"},
		{int32(100000), "100,000"},
		{"n/a", "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestFormatBytes(t *testing.T) {
	var nilSize *int64
	size := int64(5 * 1024 * 1024)

	assert.Equal(t, "0.0 B", FormatBytes(int64(0)))
	assert.Equal(t, "512.0 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(int64(1536)))
	assert.Equal(t, "5.0 MB", FormatBytes(&size))
	assert.Equal(t, "2.0 TB", FormatBytes(int64(2)<<40))
	assert.Equal(t, "2048.0 TB", FormatBytes(int64(2)<<50))
	assert.Equal(t, "—", FormatBytes(nilSize))
	assert.Equal(t, "—", FormatBytes(nil))
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 0, BarWidth(5, 0))
	assert.Equal(t, 0, BarWidth(0, 10))
	assert.Equal(t, 50, BarWidth(5, 10))
	assert.Equal(t, 100, BarWidth(10, 10))
	assert.Equal(t, 100, BarWidth(20, 10))
	assert.Equal(t, 1, BarWidth(1, 1000), "tiny values stay visible")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "unchanged", TruncateText("unchanged", 0))
	assert.Equal(t, "Lond…", TruncateText("London, UK", 5))
}

func TestFuncs_TemplateHelpers(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{
		Template:           &tmpl,
		ContentTemplateFor: func(page string) string { return page + "-content" },
	})

	var err error
	tmpl, err = template.New("root").Funcs(funcs).Parse(
		`{{define "greet-content"}}hi {{.}}{{end}}` +
			`{{define "helpers"}}{{renderSection "greet" .Name}}|{{toJSON .Data}}|{{isoTime .At}}|{{add 1 2}}|{{truncateText .City 5}}{{end}}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "helpers", map[string]any{
		"Name": "<crew>",
		"Data": map[string]int{"days": 7},
		"At":   time.Date(2026, 10, 18, 9, 30, 0, 0, time.FixedZone("BST", 3600)),
		"City": "London, UK",
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "hi &lt;crew&gt;")
	assert.Contains(t, buf.String(), "2026-10-18T08:30:00Z")
	assert.Contains(t, buf.String(), "|3|")
	assert.Contains(t, buf.String(), "|Lond…")
}

func TestRenderSection_Uninitialized(t *testing.T) {
	funcs := Funcs(Deps{ContentTemplateFor: func(string) string { return "" }})
	render, ok := funcs["renderSection"].(func(string, any) (template.HTML, error))
	require.True(t, ok)

	_, err := render("home", nil)
	assert.Error(t, err)
}
