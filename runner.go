package main

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	OutDir   string
	CacheDir string
	Fetch    FetchOptions
}

// Downloader assembles one book per DownloadBook call. It keeps no state
// between calls; everything a session learns is in its SessionResult.
type Downloader struct {
	fetch    *Fetcher
	extract  PageFieldExtractor
	outDir   string
	cacheDir string
	log      *logrus.Logger
	now      func() time.Time
}

func NewDownloader(opts Options, log *logrus.Logger) *Downloader {
	if opts.OutDir == "" {
		opts.OutDir = defaultOut
	}
	if opts.CacheDir == "" {
		opts.CacheDir = defaultCache
	}
	return &Downloader{
		fetch:    NewFetcher(opts.Fetch, log),
		extract:  intechExtractor{},
		outDir:   opts.OutDir,
		cacheDir: opts.CacheDir,
		log:      log,
		now:      time.Now,
	}
}

// DownloadBook fetches the landing page at bookURL, builds the cover,
// downloads every chapter PDF into the cache, merges cover and chapters into
// the output directory and clears the cache. The first failure ends the
// session; cached files of a failed session stay on disk.
func (d *Downloader) DownloadBook(ctx context.Context, bookURL string) SessionResult {
	var res SessionResult
	lg := d.log.WithField("url", bookURL)

	fail := func(err error) SessionResult {
		res.addError(err)
		lg.Error(err)
		return res
	}

	if err := res.Book.SetBaseURL(bookURL); err != nil {
		return fail(err)
	}
	lg.Infof("[book] new base URL: %s", res.Book.BaseURL)
	base, _ := url.Parse(res.Book.BaseURL)

	if err := ensureDirs(d.cacheDir, d.outDir); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrUnknown, err))
	}

	html, err := d.fetch.FetchText(ctx, res.Book.BaseURL)
	if err != nil {
		return fail(fmt.Errorf("landing page: %w", err))
	}
	if strings.TrimSpace(html) == "" {
		return fail(fmt.Errorf("%w: landing page %s", ErrEmptyPage, res.Book.BaseURL))
	}

	title, subtitle, ok := d.extract.ExtractTitle(html)
	if !ok {
		return fail(fmt.Errorf("%w: %s", ErrMissingTitle, res.Book.BaseURL))
	}
	res.Book.Title, res.Book.Subtitle = title, subtitle
	res.Book.DestinationPath = join(d.outDir, sanitizeTitle(res.Book.DisplayTitle())+".pdf")
	lg = lg.WithField("book", res.Book.DisplayTitle())
	lg.Info("[book] title found")

	coverPath := join(d.cacheDir, coverFileName)
	if err := BuildCover(title, subtitle, res.Book.BaseURL, coverPath); err != nil {
		return fail(err)
	}
	parts := []string{coverPath}
	seen := map[string]bool{}

	for href := range d.extract.ExtractChapterLinks(html) {
		chapterURL, err := res.Book.resolve(href)
		if err != nil {
			return fail(err)
		}
		if seen[chapterURL] {
			lg.Debugf("[chapter] skipping repeated link %s", href)
			continue
		}
		seen[chapterURL] = true
		page, err := d.fetch.FetchText(ctx, chapterURL)
		if err != nil {
			return fail(fmt.Errorf("chapter page: %w", err))
		}
		if strings.TrimSpace(page) == "" {
			return fail(fmt.Errorf("%w: chapter page %s", ErrEmptyPage, chapterURL))
		}

		ref, ok := d.extract.ExtractPDFReference(page, base)
		if !ok {
			return fail(fmt.Errorf("%w: %s", ErrMissingPDFReference, chapterURL))
		}

		local := join(d.cacheDir, ref.Filename)
		if slices.Contains(parts, local) {
			lg.Debugf("[chapter] %s already downloaded", ref.Filename)
			continue
		}
		parts = append(parts, local)
		lg.WithField("chapter", res.Chapters+1).Infof("[chapter] Filename: %s", ref.Filename)
		if err := d.fetch.FetchBinary(ctx, ref.RemoteURL, local); err != nil {
			return fail(fmt.Errorf("chapter PDF: %w", err))
		}
		res.Chapters++
	}
	if res.Chapters == 0 {
		return fail(fmt.Errorf("%w: %s", ErrNoChapters, res.Book.BaseURL))
	}

	pages, err := mergeParts(parts, res.Book.DestinationPath)
	if err != nil {
		return fail(err)
	}
	res.OutputPath, res.Pages = res.Book.DestinationPath, pages
	lg.WithFields(logrus.Fields{"file": res.OutputPath, "chapters": res.Chapters, "pages": pages}).
		Info("[book] merged")

	entry := LibraryEntry{
		Title:        res.Book.DisplayTitle(),
		URL:          res.Book.BaseURL,
		Path:         res.OutputPath,
		Chapters:     res.Chapters,
		Pages:        pages,
		DownloadedAt: d.now().UTC(),
	}
	if err := appendLibrary(join(d.outDir, libraryFile), entry); err != nil {
		lg.Warnf("[book] library log not updated: %v", err)
	}

	if err := clearCache(parts); err != nil {
		return fail(fmt.Errorf("%w; merged book kept at %s", err, res.OutputPath))
	}

	res.Succeeded = true
	return res
}
