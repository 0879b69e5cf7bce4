package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidyasagar/tpdf/internal/app"
	"github.com/vidyasagar/tpdf/internal/document"
	"github.com/vidyasagar/tpdf/internal/logging"
	"github.com/vidyasagar/tpdf/internal/storage"
	"github.com/vidyasagar/tpdf/internal/theme"
)

var (
	version = "0.1.0"
)

// pageCacheSize is the number of rendered pages kept per open document.
const pageCacheSize = 32

func main() {
	os.Exit(run())
}

// run wires tpdf together and returns the process exit code. Deferred closes
// run before main exits.
func run() int {
	var (
		themeName   string
		historyFile string
		debug       bool
		showVersion bool
	)

	flag.StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	flag.StringVar(&historyFile, "history", "", "history file (default <data dir>/history.json)")
	flag.BoolVar(&debug, "debug", false, "log at debug level")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tpdf - a terminal PDF reader that remembers where you left off\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tpdf [flags] [file.pdf [page]]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tpdf                      # start with recent documents\n")
		fmt.Fprintf(os.Stderr, "  tpdf paper.pdf            # open a document\n")
		fmt.Fprintf(os.Stderr, "  tpdf paper.pdf 12         # open at page 12\n")
		fmt.Fprintf(os.Stderr, "  tpdf --theme nord         # use the nord theme\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("tpdf %s\n", version)
		return 0
	}

	cfg, err := storage.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		def := storage.DefaultConfig()
		cfg = &def
	}
	if historyFile != "" {
		cfg.HistoryFile = historyFile
	}

	// Apply theme.
	if themeName == "" {
		themeName = cfg.Theme
	}
	if !theme.Set(themeName) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n", themeName, strings.Join(theme.List(), ", "))
		return 1
	}

	// Get optional file and page arguments.
	var (
		startPath string
		startPage int
	)
	if flag.NArg() > 0 {
		startPath, err = filepath.Abs(flag.Arg(0))
		if err != nil {
			startPath = flag.Arg(0)
		}
	}
	if flag.NArg() > 1 {
		n, err := strconv.Atoi(flag.Arg(1))
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "Invalid page: %s\n", flag.Arg(1))
			return 1
		}
		startPage = n - 1
	}

	dataDir, err := storage.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if debug {
		level = slog.LevelDebug
	}
	if closer, err := logging.OpenFile(filepath.Join(dataDir, "tpdf.log"), level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	} else {
		defer closer.Close()
	}
	log := logging.Logger()

	historyPath, err := cfg.HistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	history, res := storage.NewHistoryStore(historyPath)
	if !res.OK() {
		log.Warn("history not loaded, starting empty", "path", historyPath, "err", res.Err)
	}

	var bookmarks *storage.BookmarkStore
	db, err := storage.OpenDB(dataDir)
	if err != nil {
		log.Warn("bookmarks disabled", "err", err)
	} else {
		defer db.Close()
		bookmarks = storage.NewBookmarkStore(db)
	}

	src := document.NewPDF(pageCacheSize)
	defer src.Close()

	log.Info("starting", "version", version, "history", historyPath, "entries", history.Len())

	m := app.New(app.Options{
		Source:    src,
		History:   history,
		Bookmarks: bookmarks,
		MenuDelay: cfg.MenuTimeout(),
		StartPath: startPath,
		StartPage: startPage,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	if _, err := p.Run(); err != nil {
		log.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
