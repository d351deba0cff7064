package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/jung-kurt/gofpdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestMain(m *testing.M) {
	// keep pdfcpu away from the user config dir
	pdfapi.DisableConfigDir()
	os.Exit(m.Run())
}

func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

// samplePDF returns a PDF with the given page count, orientation ("P"/"L")
// and size ("A4", "Letter", ...).
func samplePDF(t *testing.T, orientation, size string, pages int) []byte {
	t.Helper()
	pdf := gofpdf.New(orientation, "pt", size, "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Cell(100, 20, "page")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("build sample pdf: %v", err)
	}
	return buf.Bytes()
}

type sitePage struct {
	contentType string
	body        []byte
}

func htmlPage(s string) sitePage {
	return sitePage{contentType: "text/html; charset=utf-8", body: []byte(s)}
}

func pdfPage(b []byte) sitePage {
	return sitePage{contentType: "application/pdf", body: b}
}

type hitCounter struct {
	mu   sync.Mutex
	hits map[string]int
}

func (h *hitCounter) add(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[path]++
}

func (h *hitCounter) total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, c := range h.hits {
		n += c
	}
	return n
}

// newSite serves pages by exact path and counts requests.
func newSite(t *testing.T, pages map[string]sitePage) (*httptest.Server, *hitCounter) {
	t.Helper()
	hits := &hitCounter{hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.add(r.URL.Path)
		p, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", p.contentType)
		_, _ = w.Write(p.body)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func countLevel(entries []*logrus.Entry, level logrus.Level) int {
	n := 0
	for _, e := range entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
