package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestBuildCover(t *testing.T) {
	tests := []struct {
		name, title, subtitle string
	}{
		{"title only", "Model Predictive Control", ""},
		{"with subtitle", "Fuzzy Logic", "Controls, Concepts, Theories and Applications"},
		{"long accented title", "Électronique de puissance – conversion, commande et applications aux réseaux intelligents", "Überblick"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), coverFileName)
			if err := BuildCover(tt.title, tt.subtitle, "https://www.intechopen.com/books/x", out); err != nil {
				t.Fatalf("BuildCover: %v", err)
			}
			n, err := pdfapi.PageCountFile(out)
			if err != nil {
				t.Fatalf("PageCountFile: %v", err)
			}
			if n != 1 {
				t.Errorf("cover has %d pages, want 1", n)
			}
		})
	}
}

func TestBuildCover_Deterministic(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")
	for _, p := range []string{a, b} {
		if err := BuildCover("Electric Power Conversion", "", "https://www.intechopen.com/books/electric-power-conversion", p); err != nil {
			t.Fatal(err)
		}
	}
	ab, _ := os.ReadFile(a)
	bb, _ := os.ReadFile(b)
	if len(ab) == 0 || !bytes.Equal(ab, bb) {
		t.Error("two covers of the same book differ")
	}
}

func TestBuildCover_BadPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "front.pdf")
	if err := BuildCover("x", "", "https://example.org/x", out); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

var titleShowRe = regexp.MustCompile(`BT ([\d.]+) ([\d.]+) Td \(Cover Layout\) ?Tj`)

func TestLayoutCover_TitlePosition(t *testing.T) {
	pdf := newCoverDoc("Cover Layout")
	pdf.SetCompression(false)
	layoutCover(pdf, "Cover Layout", "", "https://www.intechopen.com/books/x")
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}

	m := titleShowRe.FindSubmatch(buf.Bytes())
	if m == nil {
		t.Fatal("title text not found in page content")
	}
	k := 72 / 25.4
	x, _ := strconv.ParseFloat(string(m[1]), 64)
	y, _ := strconv.ParseFloat(string(m[2]), 64)

	// title line top at 40mm, inside the 20mm text margin
	if x/k < coverMargin {
		t.Errorf("title x = %.1fmm, want >= %.0fmm", x/k, coverMargin)
	}
	topMM := 210 - y/k - 0.5*11 - 0.3*24/k
	if topMM < 39 || topMM > 41 {
		t.Errorf("title line starts at %.1fmm, want 40mm", topMM)
	}
}
