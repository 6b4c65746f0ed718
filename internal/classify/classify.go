// Package classify decides whether a search result is worth scraping.
// The classifier is deliberately permissive: it only rejects URLs that carry
// an explicit red flag (media platform, binary file, media-heavy title), and
// the content quality filter corrects any false positives downstream.
package classify

import (
	"strings"

	"scout/internal/logger"
)

// deniedDomains lists platforms that serve video, social, shopping, or
// streaming content rather than readable articles.
var deniedDomains = []string{
	"youtube.com", "youtu.be", "vimeo.com", "dailymotion.com",
	"instagram.com", "facebook.com", "twitter.com", "tiktok.com",
	"pinterest.com", "flickr.com", "imgur.com",
	"maps.google", "images.google", "translate.google",
	"amazon.com/dp/", "ebay.com", "aliexpress.com",
	"spotify.com", "soundcloud.com", "apple.com/music",
	"netflix.com", "hulu.com", "disney.com",
}

// deniedExtensions lists file extensions for image, video, audio, document,
// and archive formats.
var deniedExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg",
	".mp4", ".avi", ".mov", ".wmv", ".flv", ".webm",
	".mp3", ".wav", ".flac", ".aac", ".ogg",
	".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx",
	".zip", ".rar", ".tar", ".gz",
}

// deniedPatterns lists URL path fragments that point at media collections or
// search-engine internals rather than content pages.
var deniedPatterns = []string{
	"/images/", "/img/", "/video/", "/videos/", "/audio/",
	"/download/", "/file/", "/attachment/", "/media/",
	"webcache.googleusercontent.com", "google.com/search",
	"google.com/url?q=", "shopping", "maps", "flights",
}

// deniedTitleKeywords lists title vocabulary that signals audiovisual content.
var deniedTitleKeywords = []string{
	"video", "watch", "listen", "download", "image", "photo",
	"picture", "song", "music", "movie", "film", "playlist",
	"gallery", "album", "stream", "live", "podcast",
}

// preferredDomains lists encyclopedic, educational, governmental, news, and
// technical publishers known to serve substantive text.
var preferredDomains = []string{
	"wikipedia.org", "britannica.com", "edu", ".gov",
	"reuters.com", "bbc.com", "cnn.com", "npr.org",
	"medium.com", "substack.com", "wordpress.com", "blogspot.com",
	"techcrunch.com", "wired.com", "arstechnica.com",
	"nature.com", "sciencedirect.com", "arxiv.org",
	"stackoverflow.com", "github.com",
}

// Classifier decides whether a URL plus its link title points at text-based
// content. The zero value is not usable; call NewClassifier.
type Classifier struct {
	deniedDomains       []string
	deniedExtensions    []string
	deniedPatterns      []string
	deniedTitleKeywords []string
	preferredDomains    []string
}

// NewClassifier returns a classifier with the default deny and allow lists.
func NewClassifier() *Classifier {
	return &Classifier{
		deniedDomains:       deniedDomains,
		deniedExtensions:    deniedExtensions,
		deniedPatterns:      deniedPatterns,
		deniedTitleKeywords: deniedTitleKeywords,
		preferredDomains:    preferredDomains,
	}
}

// IsTextURL reports whether the URL likely yields substantive textual
// content. Rules are checked in order and the first match wins: scheme,
// denied domain, denied extension, denied path pattern, denied title
// keyword, preferred-domain boost, then default accept.
func (c *Classifier) IsTextURL(rawURL, title string) bool {
	if rawURL == "" || !strings.HasPrefix(rawURL, "http") {
		return false
	}

	urlLower := strings.ToLower(rawURL)
	titleLower := strings.ToLower(title)

	for _, domain := range c.deniedDomains {
		if strings.Contains(urlLower, domain) {
			logger.Debug("URL rejected by domain deny-list", "url", rawURL, "domain", domain)
			return false
		}
	}

	for _, ext := range c.deniedExtensions {
		if strings.HasSuffix(urlLower, ext) {
			logger.Debug("URL rejected by extension deny-list", "url", rawURL, "extension", ext)
			return false
		}
	}

	for _, pattern := range c.deniedPatterns {
		if strings.Contains(urlLower, pattern) {
			logger.Debug("URL rejected by pattern deny-list", "url", rawURL, "pattern", pattern)
			return false
		}
	}

	for _, keyword := range c.deniedTitleKeywords {
		if strings.Contains(titleLower, keyword) {
			logger.Debug("URL rejected by title keyword", "url", rawURL, "keyword", keyword)
			return false
		}
	}

	// The allow-boost short-circuits the default only after every deny rule
	// has had its chance, so a preferred domain never rescues a denied URL.
	for _, domain := range c.preferredDomains {
		if strings.Contains(urlLower, domain) {
			logger.Debug("URL accepted by preferred domain", "url", rawURL, "domain", domain)
			return true
		}
	}

	// No explicit red flag found, presumed text-based.
	return true
}
