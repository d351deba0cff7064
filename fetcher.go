package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// FetchOptions configures a Fetcher. The zero value is strict TLS, no
// timeout and no pacing.
type FetchOptions struct {
	// InsecureTLS turns off certificate verification for binary downloads.
	// Reduced security; only for hosts whose chain does not validate.
	InsecureTLS bool
	Timeout     time.Duration // 0 = wait forever
	Delay       time.Duration // minimum gap between requests, 0 = none
	Progress    io.Writer     // download progress bars, nil = discard
}

// Fetcher performs the GET requests of a session: HTML pages as text and
// chapter PDFs streamed to disk.
type Fetcher struct {
	text     *http.Client
	binary   *http.Client
	limiter  *rate.Limiter
	progress io.Writer
	log      *logrus.Logger
}

func NewFetcher(opts FetchOptions, log *logrus.Logger) *Fetcher {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureTLS {
		log.Warn("[fetch] TLS certificate verification disabled for PDF downloads (--insecure-tls)")
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	return &Fetcher{
		text:     &http.Client{Timeout: opts.Timeout},
		binary:   &http.Client{Timeout: opts.Timeout, Transport: tr},
		limiter:  rate.NewLimiter(limit, 1),
		progress: progress,
		log:      log,
	}
}

// FetchText GETs u and returns the body decoded to UTF-8.
func (f *Fetcher) FetchText(ctx context.Context, u string) (string, error) {
	resp, err := f.get(ctx, f.text, u)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: decode %s: %v", ErrUnknown, u, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrTransport, u, err)
	}
	return string(body), nil
}

// FetchBinary GETs u and streams the body into dest, replacing any
// existing file.
func (f *Fetcher) FetchBinary(ctx context.Context, u, dest string) error {
	resp, err := f.get(ctx, f.binary, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrUnknown, dest, err)
	}

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetWriter(f.progress),
		progressbar.OptionSetDescription(filepath.Base(dest)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(f.progress)
		}),
	)

	n, err := io.Copy(io.MultiWriter(out, bar), resp.Body)
	if err != nil {
		out.Close()
		return fmt.Errorf("%w: download %s: %v", ErrTransport, u, err)
	}
	_ = bar.Finish()
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnknown, dest, err)
	}
	f.log.WithFields(logrus.Fields{"file": dest, "bytes": n}).Debug("[fetch] saved")
	return nil
}

func (f *Fetcher) get(ctx context.Context, client *http.Client, u string) (*http.Response, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}

	f.log.WithField("url", u).Debug("[fetch] GET")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: http %d for %s", ErrHTTPStatus, resp.StatusCode, u)
	}
	return resp, nil
}
