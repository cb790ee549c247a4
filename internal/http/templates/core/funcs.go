package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/crakhack/crakhack-web/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers shared by every page.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"friendlyTime": createFriendlyTimeFunc(),
		"relativeTime": createRelativeTimeFunc(),
		"isoTime":      isoTime,
		"add":          func(a, b int) int { return a + b },
		"formatNumber": FormatNumber,
		"formatBytes":  FormatBytes,
		"barWidth":     BarWidth,
		"truncateText": TruncateText,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		// #nosec G203 - go-json escapes <, > and & by default, so the output is safe inside <script>.
		return template.JS(b), nil
	}
}

func asTime(ts any) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func createFriendlyTimeFunc() func(any) string {
	return func(ts any) string {
		return uiutil.FormatFriendlyDateTime(asTime(ts))
	}
}

func createRelativeTimeFunc() func(any) string {
	return func(ts any) string {
		t0 := asTime(ts)
		if t0.IsZero() {
			return ""
		}
		return uiutil.FriendlyRelativeTime(t0)
	}
}

func isoTime(ts any) string {
	t0 := asTime(ts)
	if t0.IsZero() {
		return ""
	}
	return t0.UTC().Format(time.RFC3339)
}

// FormatNumber formats an integer with comma separators for thousands.
func FormatNumber(v any) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case int32:
		n = int64(x)
	default:
		return fmt.Sprint(v)
	}

	neg := n < 0
	s := strconv.FormatInt(n, 10)
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		s = withCommas(s)
	}
	if neg {
		return "-" + s
	}
	return s
}

func withCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s) + (len(s)-1)/3)

	prefix := len(s) % 3
	if prefix == 0 {
		prefix = 3
	}
	b.WriteString(s[:prefix])
	for i := prefix; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes renders a byte count with one decimal in binary units. Nil renders "—".
func FormatBytes(v any) string {
	var size float64
	switch x := v.(type) {
	case int64:
		size = float64(x)
	case int:
		size = float64(x)
	case *int64:
		if x == nil {
			return "—"
		}
		size = float64(*x)
	default:
		return "—"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return strconv.FormatFloat(size, 'f', 1, 64) + " " + units[i]
}

// BarWidth returns value as a whole percentage of peak, clamped to [0, 100].
func BarWidth(value, peak int64) int {
	if peak <= 0 || value <= 0 {
		return 0
	}
	pct := int(value * 100 / peak)
	if pct < 1 {
		return 1
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// TruncateText truncates a string to a maximum number of runes (not bytes).
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, maxLen)
}
