package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/crawl"
	"github.com/fwojciec/scout/firecrawl"
	"github.com/fwojciec/scout/goquery"
	"github.com/fwojciec/scout/htmltomarkdown"
	scouthttp "github.com/fwojciec/scout/http"
	"github.com/fwojciec/scout/regexp"
	"github.com/fwojciec/scout/rod"
	scoutslog "github.com/fwojciec/scout/slog"
	"github.com/fwojciec/scout/sqlite"
	"github.com/fwojciec/scout/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default database path. Overridden by --db or SCOUT_DB.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Page fetcher and scrapers for end-to-end testing. When nil, Run builds
	// them from the --fetcher flag.
	PageFetcher   scout.PageFetcher
	JobScraper    scout.JobScraper
	CourseScraper scout.CourseScraper

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scout"),
		kong.Description("Scrape job and course listings."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"dbPath": m.DBPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scout --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	defer m.Close()

	if cmd == "list" || cmd == "serve" || cli.Jobs.Save || cli.Courses.Save {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SCOUT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		deps.JobStore = sqlite.NewJobService(m.DB)
		deps.CourseStore = sqlite.NewCourseService(m.DB)
	}

	deps.Options = scrapeOptions(cli)

	if cmd != "list" {
		if m.PageFetcher == nil && (cmd == "fetch" || m.JobScraper == nil || m.CourseScraper == nil) {
			pages, err := m.newPageFetcher(cli, deps.Logger, stderr)
			if err != nil {
				return err
			}
			m.PageFetcher = pages
		}
		if m.PageFetcher != nil {
			deps.PageFetcher = scoutslog.NewLoggingPageFetcher(m.PageFetcher, deps.Logger)
		}
		if m.JobScraper == nil || m.CourseScraper == nil {
			scraper := newScraper(cli, deps.PageFetcher, deps.Options, deps.Logger)
			if m.JobScraper == nil {
				m.JobScraper = scraper
			}
			if m.CourseScraper == nil {
				m.CourseScraper = scraper
			}
		}
		deps.JobScraper = scoutslog.NewLoggingJobScraper(m.JobScraper, deps.Logger)
		deps.CourseScraper = scoutslog.NewLoggingCourseScraper(m.CourseScraper, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// scrapeOptions applies the global flags to the default listing options.
func scrapeOptions(cli *CLI) scout.ScrapeOptions {
	opts := crawl.DefaultScrapeOptions()
	opts.WaitFor = cli.Wait
	opts.OnlyMainContent = cli.MainContent
	return opts
}

// newScraper builds a crawl.Scraper over pages. A non-positive --rps
// disables rate limiting.
func newScraper(cli *CLI, pages scout.PageFetcher, opts scout.ScrapeOptions, logger *slog.Logger) *crawl.Scraper {
	extractor := regexp.NewExtractor()
	scraper := &crawl.Scraper{
		Fetcher:     pages,
		Jobs:        extractor,
		Courses:     extractor,
		Logger:      logger,
		Options:     &opts,
		Concurrency: cli.Concurrency,
	}
	if cli.RPS > 0 {
		scraper.RateLimiter = crawl.NewDomainLimiter(cli.RPS)
	}
	return scraper
}

// newPageFetcher builds the page fetcher selected by --fetcher.
func (m *Main) newPageFetcher(cli *CLI, logger *slog.Logger, stderr io.Writer) (scout.PageFetcher, error) {
	switch backend := cli.Fetcher; {
	case backend == "firecrawl" || (backend == "auto" && cli.FirecrawlKey != ""):
		if cli.FirecrawlKey == "" {
			fmt.Fprintln(stderr, "Hint: Set SCOUT_FIRECRAWL_KEY or pass --firecrawl-key")
			return nil, scout.Errorf(scout.EINVALID, "firecrawl API key required")
		}
		return firecrawl.NewClient(cli.FirecrawlKey), nil
	case backend == "rod":
		fetcher, err := rod.NewFetcher(rod.WithRenderDelay(cli.Wait))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, fetcher)
		return m.localPipeline(fetcher, logger), nil
	default:
		fetcher := scouthttp.NewFetcher()
		m.closers = append(m.closers, fetcher)
		return m.localPipeline(fetcher, logger), nil
	}
}

// localPipeline renders pages with fetcher and converts them to markdown
// in-process.
func (m *Main) localPipeline(fetcher scout.Fetcher, logger *slog.Logger) scout.PageFetcher {
	return &goquery.PageFetcher{
		Fetcher:   scoutslog.NewLoggingFetcher(fetcher, logger),
		Extractor: trafilatura.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scout.db"
	}
	dir := filepath.Join(home, ".scout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "scout.db")
}
