package classify

import (
	"strings"

	"scout/internal/logger"
)

// Profile narrows a base classifier for a domain-specific research mode.
// A profile first delegates to the base decision and can only reject URLs
// the base accepted, never accept URLs the base rejected. Its preferred
// list selects which of the base's accepts survive when RequirePreferred
// is set; its deny list removes further URLs unconditionally.
type Profile struct {
	base             *Classifier
	name             string
	extraDenied      []string
	extraPreferred   []string
	requirePreferred bool
}

// ProfileOption configures a Profile.
type ProfileOption func(*Profile)

// WithDeniedSubstrings adds URL substrings the profile rejects even when the
// base classifier accepts.
func WithDeniedSubstrings(substrings ...string) ProfileOption {
	return func(p *Profile) {
		p.extraDenied = append(p.extraDenied, substrings...)
	}
}

// WithPreferredDomains adds domains the profile treats as in-scope.
func WithPreferredDomains(domains ...string) ProfileOption {
	return func(p *Profile) {
		p.extraPreferred = append(p.extraPreferred, domains...)
	}
}

// WithRequirePreferred restricts the profile to its preferred domains: any
// URL not matching one is rejected even when the base accepts it.
func WithRequirePreferred() ProfileOption {
	return func(p *Profile) {
		p.requirePreferred = true
	}
}

// NewProfile builds a named profile over the given base classifier.
func NewProfile(name string, base *Classifier, opts ...ProfileOption) *Profile {
	p := &Profile{base: base, name: name}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the profile name.
func (p *Profile) Name() string {
	return p.name
}

// IsTextURL applies the base decision first, then the profile's own
// narrowing rules.
func (p *Profile) IsTextURL(rawURL, title string) bool {
	if !p.base.IsTextURL(rawURL, title) {
		return false
	}

	urlLower := strings.ToLower(rawURL)

	for _, substr := range p.extraDenied {
		if strings.Contains(urlLower, substr) {
			logger.Debug("URL rejected by profile deny-list", "profile", p.name, "url", rawURL, "substring", substr)
			return false
		}
	}

	if p.requirePreferred {
		for _, domain := range p.extraPreferred {
			if strings.Contains(urlLower, domain) {
				return true
			}
		}
		logger.Debug("URL outside profile preferred domains", "profile", p.name, "url", rawURL)
		return false
	}

	return true
}

// AcademicProfile restricts research to scholarly publishers and preprint
// archives.
func AcademicProfile(base *Classifier) *Profile {
	return NewProfile("academic", base,
		WithPreferredDomains(
			"arxiv.org", "nature.com", "science.org",
			"ieee.org", "acm.org", "scholar.google.com",
			"sciencedirect.com", ".edu",
		),
		WithRequirePreferred(),
	)
}
