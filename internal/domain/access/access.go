// Package access decides, per request, whether the screener gate lets a request
// through, rewrites it onto the protected namespace, or sends it to the login page.
//
// Decide is pure: it reads only the Request and the Policy, so the same inputs
// always yield the same Decision. Nothing is cached between requests.
package access

import (
	"net/url"
	"regexp"
	"strings"
)

// Session cookie contract shared by the gate and the login handler.
const (
	CookieName   = "crakhack_screener"
	CookieValue  = "ok"
	CookieMaxAge = 30 * 24 * 60 * 60
)

// Sub-paths under a namespace that must stay reachable without a session.
const (
	LoginSegment = "/login"
	AuthSegment  = "/auth"
)

// Kind enumerates gate outcomes.
type Kind int

const (
	// Allow serves the request unchanged.
	Allow Kind = iota
	// RedirectToLogin sends the browser to the namespace login page.
	RedirectToLogin
	// RewriteToScreenerRoot serves the primary namespace root under the screener host's "/".
	RewriteToScreenerRoot
	// RewriteIntoScreenerNamespace serves a namespace sub-path (login, auth) under the screener host.
	RewriteIntoScreenerNamespace
)

func (k Kind) String() string {
	switch k {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RewriteToScreenerRoot:
		return "rewrite_to_screener_root"
	case RewriteIntoScreenerNamespace:
		return "rewrite_into_screener_namespace"
	default:
		return "unknown"
	}
}

//nolint:gochecknoglobals // static read-only lookup tables
var (
	publicPrefixes = []string{"/_next", "/static/", "/favicon", "/robots", "/sitemap", "/images/"}
	publicSuffixes = []string{".svg", ".jpg", ".jpeg", ".png", ".ico", ".webp", ".css", ".js"}

	previewBotPattern = regexp.MustCompile(`(?i)facebookexternalhit|twitterbot|slackbot|discordbot|whatsapp|` +
		`telegrambot|linkedinbot|pinterest|embedly|vkshare|applebot|googlebot|bingbot|yandex|duckduckbot`)
)

// Policy is the gate configuration. Namespaces[0] is the primary namespace.
type Policy struct {
	Namespaces       []string
	Hosts            []string
	AllowPreviewBots bool
	// SecretConfigured is false when no shared password exists; the gate then denies everything protected.
	SecretConfigured bool
}

// Request carries the inputs the gate reads.
type Request struct {
	Path      string
	RawQuery  string
	Host      string
	Cookie    string
	UserAgent string
}

// Decision is the gate outcome for one request.
type Decision struct {
	Kind Kind
	// Path is the effective path to route for rewrites; equals the request path otherwise.
	Path string
	// Location is the redirect target for RedirectToLogin.
	Location string
	// Namespace is the protected namespace the request falls in, if any.
	Namespace string
	// VisiblePrefix is the namespace prefix the browser sees: empty on the screener host.
	VisiblePrefix string
}

// Decide evaluates the gate for a single request.
func (p *Policy) Decide(req Request) Decision {
	path := req.Path
	if path == "" {
		path = "/"
	}

	if IsPublicAsset(path) {
		return Decision{Kind: Allow, Path: path}
	}

	if p.IsScreenerHost(req.Host) {
		if d, ok := p.decideScreenerHost(path, req); ok {
			return d
		}
	}

	ns, ok := p.NamespaceFor(path)
	if !ok {
		return Decision{Kind: Allow, Path: path}
	}

	d := Decision{Kind: Allow, Path: path, Namespace: ns, VisiblePrefix: ns}
	if isOpenSubPath(ns, path) || p.authorized(req) {
		return d
	}

	d.Kind = RedirectToLogin
	d.Location = LoginURL(ns, requestTarget(path, req.RawQuery))
	return d
}

// decideScreenerHost handles the paths the screener host maps onto the primary namespace.
// The bool is false for paths that fall through to the regular rules.
func (p *Policy) decideScreenerHost(path string, req Request) (Decision, bool) {
	primary := p.PrimaryNamespace()
	if primary == "" {
		return Decision{}, false
	}

	if path == "/" {
		if p.authorized(req) {
			return Decision{Kind: RewriteToScreenerRoot, Path: primary, Namespace: primary}, true
		}
		return Decision{
			Kind:      RedirectToLogin,
			Path:      path,
			Location:  LoginURL("", requestTarget(path, req.RawQuery)),
			Namespace: primary,
		}, true
	}

	if hasSegmentPrefix(path, LoginSegment) || hasSegmentPrefix(path, AuthSegment) {
		return Decision{
			Kind:      RewriteIntoScreenerNamespace,
			Path:      primary + path,
			Namespace: primary,
		}, true
	}

	return Decision{}, false
}

func (p *Policy) authorized(req Request) bool {
	if !p.SecretConfigured {
		return false
	}
	if p.AllowPreviewBots && IsPreviewBot(req.UserAgent) {
		return true
	}
	return req.Cookie == CookieValue
}

// PrimaryNamespace returns the rewrite target namespace.
func (p *Policy) PrimaryNamespace() string {
	if len(p.Namespaces) == 0 {
		return ""
	}
	return p.Namespaces[0]
}

// NamespaceFor returns the protected namespace containing path.
func (p *Policy) NamespaceFor(path string) (string, bool) {
	for _, ns := range p.Namespaces {
		if hasSegmentPrefix(path, ns) {
			return ns, true
		}
	}
	return "", false
}

// IsScreenerHost reports whether host (with optional port) is a dedicated screener hostname.
func (p *Policy) IsScreenerHost(host string) bool {
	h := NormalizeHost(host)
	if h == "" {
		return false
	}
	for _, candidate := range p.Hosts {
		if h == candidate {
			return true
		}
	}
	return false
}

// IsPublicAsset reports whether path bypasses the gate entirely.
func IsPublicAsset(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	lower := strings.ToLower(path)
	for _, suffix := range publicSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// IsPreviewBot reports whether ua belongs to a link-preview crawler.
func IsPreviewBot(ua string) bool {
	return ua != "" && previewBotPattern.MatchString(ua)
}

// NormalizeHost lowercases host and strips any port.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if strings.HasPrefix(host, "[") {
		if end := strings.Index(host, "]"); end > 0 {
			return host[1:end]
		}
		return host
	}
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host
}

// LoginURL builds "<prefix>/login?next=<escaped next>".
func LoginURL(prefix, next string) string {
	return prefix + LoginSegment + "?next=" + url.QueryEscape(next)
}

// LoginErrorURL builds the failed-login redirect that keeps next intact.
func LoginErrorURL(prefix, next string) string {
	return prefix + LoginSegment + "?error=1&next=" + url.QueryEscape(next)
}

func isOpenSubPath(ns, path string) bool {
	return hasSegmentPrefix(path, ns+LoginSegment) || hasSegmentPrefix(path, ns+AuthSegment)
}

func requestTarget(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// hasSegmentPrefix matches prefix exactly or as a whole leading path segment:
// "/screener" matches "/screener" and "/screener/x" but not "/screenerx".
func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
