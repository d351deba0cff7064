package main

import (
	"iter"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageFieldExtractor pulls book fields out of a site's HTML. A layout change
// on the site means a new implementation, not a pipeline change.
type PageFieldExtractor interface {
	ExtractTitle(html string) (title, subtitle string, ok bool)
	ExtractChapterLinks(html string) iter.Seq[string]
	ExtractPDFReference(html string, base *url.URL) (PDFReference, bool)
}

var (
	chapterHrefRe = regexp.MustCompile(`^[\w\-/]+$`)
	citationPDFRe = regexp.MustCompile(`citation-pdf-url/(\d+)`)
	cdnPDFRe      = regexp.MustCompile(`https://cdn\.intechopen\.com/pdfs/(\d+\.pdf)`)
)

const chapterPDFPath = "/chapter/pdf-download/"

// intechExtractor matches the intechopen.com book and chapter pages.
type intechExtractor struct{}

func (intechExtractor) ExtractTitle(html string) (string, string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", false
	}
	h := doc.Find("h1.title").First()
	if h.Length() == 0 {
		return "", "", false
	}
	title := cleanText(h.Text())
	if title == "" {
		return "", "", false
	}
	subtitle := cleanText(doc.Find("p.subTitle").First().Text())
	return title, subtitle, true
}

// ExtractChapterLinks yields chapter hrefs in document order. Only relative
// paths are accepted; anything else under the marker class is skipped.
func (intechExtractor) ExtractChapterLinks(html string) iter.Seq[string] {
	return func(yield func(string) bool) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return
		}
		doc.Find("a.linkType1[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			href = strings.TrimSpace(href)
			if !chapterHrefRe.MatchString(href) {
				return true
			}
			return yield(href)
		})
	}
}

// ExtractPDFReference prefers the citation id (download URL synthesized on
// the base URL's host) over a direct CDN link.
func (intechExtractor) ExtractPDFReference(html string, base *url.URL) (PDFReference, bool) {
	if m := citationPDFRe.FindStringSubmatch(html); m != nil {
		id := m[1]
		link := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: chapterPDFPath + id}
		return PDFReference{RemoteURL: link.String(), Filename: id + ".pdf"}, true
	}
	if m := cdnPDFRe.FindStringSubmatch(html); m != nil {
		return PDFReference{RemoteURL: m[0], Filename: m[1]}, true
	}
	return PDFReference{}, false
}
