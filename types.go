package main

import (
	"errors"
	"time"
)

// ======================= CONFIG =======================

const (
	defaultOut     = "ebooks"   // merged books
	defaultCache   = "pdfcache" // chapter PDFs + cover during a session
	coverFileName  = "front.pdf"
	libraryFile    = "library.jsonl"
	defaultBookURL = "https://www.intechopen.com/books/applications-of-matlab-in-science-and-engineering"
)

// ======================= ERRORS =======================

var (
	ErrInvalidURL          = errors.New("invalid URL")
	ErrTransport           = errors.New("network transport failure")
	ErrHTTPStatus          = errors.New("network protocol failure")
	ErrEmptyPage           = errors.New("empty page")
	ErrMissingTitle        = errors.New("unable to extract title")
	ErrMissingPDFReference = errors.New("unable to extract PDF URL")
	ErrNoChapters          = errors.New("no chapters found")
	ErrMerge               = errors.New("merge failed")
	ErrFileDeletion        = errors.New("cache cleanup failed")
	ErrUnknown             = errors.New("unknown error")
)

// ======================= DATA TYPES ===================

// Book is filled in as a session progresses. The base URL is set first,
// the title fields after the landing page was parsed.
type Book struct {
	BaseURL         string
	Title           string
	Subtitle        string
	DestinationPath string
}

// DisplayTitle is "title" or "title - subtitle".
func (b Book) DisplayTitle() string {
	if b.Subtitle == "" {
		return b.Title
	}
	return b.Title + " - " + b.Subtitle
}

// PDFReference points at one chapter PDF.
type PDFReference struct {
	RemoteURL string
	Filename  string
}

// SessionResult is what one DownloadBook call reports back.
type SessionResult struct {
	Succeeded  bool
	Errors     []string
	Err        error // the error that ended the session, nil on success
	Book       Book
	OutputPath string
	Chapters   int
	Pages      int
}

func (r *SessionResult) addError(err error) {
	if r.Err == nil {
		r.Err = err
	}
	r.Errors = append(r.Errors, err.Error())
}

// LibraryEntry is one line of the library log.
type LibraryEntry struct {
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Path         string    `json:"path"`
	Chapters     int       `json:"chapters"`
	Pages        int       `json:"pages,omitempty"`
	DownloadedAt time.Time `json:"downloaded_at"`
}
