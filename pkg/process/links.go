package process

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/utils"
)

// LinkExtractor turns raw page markup into the ordered candidate link list
type LinkExtractor interface {
	Extract(markup string) ([]string, error)
}

// HrefExtractor extracts candidate article links from the main body content
// of a page using goquery
type HrefExtractor struct {
	contentSelector string // CSS selector for the article body container
	linkPrefix      string // Required href prefix
	sandboxSuffix   string // Excluded href suffix
	log             *logrus.Logger
}

// NewHrefExtractor creates a HrefExtractor
func NewHrefExtractor(contentSelector, linkPrefix, sandboxSuffix string, log *logrus.Logger) *HrefExtractor {
	return &HrefExtractor{
		contentSelector: contentSelector,
		linkPrefix:      linkPrefix,
		sandboxSuffix:   sandboxSuffix,
		log:             log,
	}
}

// Extract parses markup, locates the body content container, and returns the
// filtered hrefs found inside it in document order.
// A page without the container yields utils.ErrBodyContainer; the caller
// decides whether that ends the run.
func (e *HrefExtractor) Extract(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing page markup: %w", err)
	}

	body := doc.Find(e.contentSelector).First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("%w: selector '%s'", utils.ErrBodyContainer, e.contentSelector)
	}

	var hrefs []string
	body.Find("a[href]").Each(func(_ int, element *goquery.Selection) {
		href, exists := element.Attr("href")
		if !exists || href == "" {
			return // Skip empty hrefs
		}
		hrefs = append(hrefs, href)
	})

	cleaned := e.CleanLinks(hrefs)
	e.log.WithFields(logrus.Fields{
		"raw":      len(hrefs),
		"filtered": len(cleaned),
	}).Debug("Extracted candidate links")

	return cleaned, nil
}

// CleanLinks filters hrefs down to same-site article candidates, preserving
// order: keep the article prefix, drop sandbox pages, drop namespaced pages
// (Talk:, File:, Category: and the like carry a colon).
func (e *HrefExtractor) CleanLinks(hrefs []string) []string {
	cleaned := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		if !strings.HasPrefix(href, e.linkPrefix) {
			continue
		}
		if strings.HasSuffix(href, e.sandboxSuffix) {
			continue
		}
		if strings.Contains(href, ":") {
			continue
		}
		cleaned = append(cleaned, href)
	}
	return cleaned
}
