package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Args struct {
	URLs        []string      `arg:"positional" help:"book landing page URL(s); defaults to the built-in book"`
	OutDir      string        `arg:"-o,--out,env:EBOOK_OUTPUT_DIR" default:"ebooks" help:"directory for merged books"`
	CacheDir    string        `arg:"--cache,env:EBOOK_CACHE_DIR" default:"pdfcache" help:"scratch directory for chapter PDFs"`
	InsecureTLS bool          `arg:"--insecure-tls,env:EBOOK_INSECURE_TLS" help:"skip TLS certificate checks for PDF downloads (reduced security)"`
	Timeout     time.Duration `arg:"--timeout" help:"per-request timeout, 0 waits forever"`
	Delay       time.Duration `arg:"--delay" help:"minimum pause between requests"`
	List        bool          `arg:"--list" help:"print the library log and exit"`
	Debug       bool          `arg:"--debug" help:"verbose logging"`
}

func (Args) Description() string {
	return "Download a complete IntechOpen book as one PDF: generated cover page followed by every chapter."
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// optional; real env vars win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	var args Args
	arg.MustParse(&args)

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if args.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if args.List {
		return printLibrary(join(args.OutDir, libraryFile))
	}

	urls := args.URLs
	if len(urls) == 0 {
		urls = []string{defaultBookURL}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := NewDownloader(Options{
		OutDir:   args.OutDir,
		CacheDir: args.CacheDir,
		Fetch: FetchOptions{
			InsecureTLS: args.InsecureTLS,
			Timeout:     args.Timeout,
			Delay:       args.Delay,
			Progress:    os.Stderr,
		},
	}, log)

	failed := 0
	for _, u := range urls {
		res := d.DownloadBook(ctx, u)
		printSession(u, res)
		if !res.Succeeded {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d books failed", failed, len(urls))
	}
	return nil
}

func printSession(u string, res SessionResult) {
	if res.Succeeded {
		fmt.Printf("Download complete: %s (%d chapters, %d pages)\n", res.OutputPath, res.Chapters, res.Pages)
	} else {
		fmt.Printf("Download failed: %s\n", u)
	}
	fmt.Printf("Errors (%d):\n", len(res.Errors))
	for _, e := range res.Errors {
		fmt.Printf("  - %s\n", e)
	}
}

func printLibrary(path string) error {
	entries, err := loadLibrary(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("library %s is empty\n", path)
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-60s  %3d ch  %4d p  %s\n",
			e.DownloadedAt.Format("2006-01-02 15:04"), e.Title, e.Chapters, e.Pages, e.Path)
	}
	return nil
}
