package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/scout"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *slog.Logger
	PageFetcher   scout.PageFetcher
	Options       scout.ScrapeOptions
	JobScraper    scout.JobScraper
	CourseScraper scout.CourseScraper
	JobStore      scout.JobService
	CourseStore   scout.CourseService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB           string        `default:"${dbPath}" env:"SCOUT_DB" help:"SQLite database path"`
	Fetcher      string        `default:"auto" enum:"auto,firecrawl,http,rod" env:"SCOUT_FETCHER" help:"Page fetcher: auto uses firecrawl when a key is set, else http"`
	FirecrawlKey string        `env:"SCOUT_FIRECRAWL_KEY" help:"Firecrawl API key"`
	Wait         time.Duration `default:"2s" help:"Time to let rendered pages settle"`
	RPS          float64       `default:"1" help:"Requests per second per site, 0 for no limit"`
	Concurrency  int           `short:"c" default:"1" help:"Sites fetched in parallel"`
	MainContent  bool          `name:"main-content" env:"SCOUT_MAIN_CONTENT" help:"Strip page boilerplate before extraction"`
	Verbose      bool          `short:"v" help:"Log fetches at debug level"`

	Jobs    JobsCmd    `cmd:"" help:"Scrape job listings"`
	Courses CoursesCmd `cmd:"" help:"Scrape course listings"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch a page and print it as markdown"`
	List    ListCmd    `cmd:"" help:"List saved jobs or courses"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API"`
}

// JobsCmd is the "jobs" subcommand.
type JobsCmd struct {
	Queries []string `arg:"" help:"Search queries"`
	Limit   int      `short:"n" default:"10" help:"Maximum results per query"`
	Save    bool     `short:"s" help:"Save results to the database"`
	JSON    bool     `name:"json" help:"Print results as JSON"`
}

// CoursesCmd is the "courses" subcommand.
type CoursesCmd struct {
	Queries []string `arg:"" help:"Search queries"`
	Limit   int      `short:"n" default:"10" help:"Maximum results per query"`
	Save    bool     `short:"s" help:"Save results to the database"`
	JSON    bool     `name:"json" help:"Print results as JSON"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL  string `arg:"" help:"Page URL"`
	HTML bool   `name:"html" help:"Print filtered HTML instead of markdown"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Jobs    ListJobsCmd    `cmd:"" help:"List saved jobs"`
	Courses ListCoursesCmd `cmd:"" help:"List saved courses"`
}

// ListJobsCmd is the "list jobs" subcommand.
type ListJobsCmd struct {
	Source string `help:"Only jobs from this source"`
	Limit  int    `short:"n" default:"20" help:"Maximum jobs to show"`
	JSON   bool   `name:"json" help:"Print results as JSON"`
}

// ListCoursesCmd is the "list courses" subcommand.
type ListCoursesCmd struct {
	Source string `help:"Only courses from this source"`
	Limit  int    `short:"n" default:"20" help:"Maximum courses to show"`
	JSON   bool   `name:"json" help:"Print results as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr         string        `default:":8080" env:"SCOUT_ADDR" help:"Listen address"`
	Refresh      string        `env:"SCOUT_REFRESH" help:"Cron schedule for refreshing saved listings, e.g. '@every 6h'"`
	RefreshQuery []string      `name:"refresh-query" help:"Query to refresh on schedule (repeatable)"`
	RedisURL     string        `name:"redis-url" env:"SCOUT_REDIS_URL" help:"Redis URL for caching scrape results"`
	CacheTTL     time.Duration `name:"cache-ttl" default:"15m" help:"Cache TTL for scrape results"`
}
