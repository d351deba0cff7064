package main

import (
	"fmt"
	"net/url"
	"strings"
)

// SetBaseURL stores candidate as the book's base URL if it has a scheme,
// a host and a path. A rejected candidate leaves the previous value untouched.
func (b *Book) SetBaseURL(candidate string) error {
	u, err := parseBaseURL(candidate)
	if err != nil {
		return err
	}
	b.BaseURL = u.String()
	return nil
}

func parseBaseURL(candidate string) (*url.URL, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, fmt.Errorf("%w: empty base URL", ErrInvalidURL)
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, candidate)
	}
	if u.Scheme == "" || u.Host == "" || u.Path == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, candidate)
	}
	return u, nil
}

// resolve turns a chapter href into an absolute URL against the base URL.
func (b Book) resolve(href string) (string, error) {
	base, err := parseBaseURL(b.BaseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, href)
	}
	return base.ResolveReference(ref).String(), nil
}
