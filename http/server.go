package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/scout"
	"github.com/go-playground/validator/v10"
)

// DefaultLimit is the result limit used when a request sets none.
const DefaultLimit = 10

// MaxLimit is the largest per-query limit a request may ask for.
const MaxLimit = 100

// DefaultShutdownTimeout bounds how long in-flight requests may run after
// the serve context is canceled.
const DefaultShutdownTimeout = 30 * time.Second

const (
	msgQueryRequired = "Query or queries parameter is required"
	msgInvalidLimit  = "Invalid limit parameter"
	msgInvalidOffset = "Invalid offset parameter"
	msgInvalidBody   = "Invalid request body"
)

// Server exposes the scrapers and stores over HTTP.
type Server struct {
	jobs        scout.JobScraper
	courses     scout.CourseScraper
	jobStore    scout.JobService
	courseStore scout.CourseService
	logger      *slog.Logger
	validate    *validator.Validate
	handler     http.Handler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithJobStore saves scraped jobs and enables the job listing routes.
func WithJobStore(js scout.JobService) ServerOption {
	return func(s *Server) {
		s.jobStore = js
	}
}

// WithCourseStore saves scraped courses and enables the course listing routes.
func WithCourseStore(cs scout.CourseService) ServerOption {
	return func(s *Server) {
		s.courseStore = cs
	}
}

// WithLogger sets the request and error logger. Defaults to discarding.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a Server routing scrape requests to jobs and courses.
func NewServer(jobs scout.JobScraper, courses scout.CourseScraper, opts ...ServerOption) *Server {
	s := &Server{
		jobs:     jobs,
		courses:  courses,
		logger:   slog.New(slog.DiscardHandler),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/scrape/jobs", s.handleScrapeJobs)
	mux.HandleFunc("GET /api/scrape/jobs", s.handleScrapeJobs)
	mux.HandleFunc("POST /api/scrape/courses", s.handleScrapeCourses)
	mux.HandleFunc("GET /api/scrape/courses", s.handleScrapeCourses)
	if s.jobStore != nil {
		mux.HandleFunc("GET /api/jobs", s.handleListJobs)
		mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	}
	if s.courseStore != nil {
		mux.HandleFunc("GET /api/courses", s.handleListCourses)
		mux.HandleFunc("GET /api/courses/{id}", s.handleGetCourse)
	}
	s.handler = s.withLogging(s.withRecovery(mux))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		// Scrapes fetch several sites in turn.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// scrapeRequest is the body of a scrape request. Query selects the single
// form; a non-empty Queries selects the batch form.
type scrapeRequest struct {
	Query   string   `json:"query" validate:"max=200"`
	Queries []string `json:"queries" validate:"max=20,dive,max=200"`
	Limit   *int     `json:"limit" validate:"omitempty,min=0,max=100"`
}

func (r scrapeRequest) limit() int {
	if r.Limit == nil {
		return DefaultLimit
	}
	return *r.Limit
}

// parseScrapeRequest reads a scrape request from the JSON body (POST) or the
// query string (GET). It returns a client-facing message on failure.
func (s *Server) parseScrapeRequest(r *http.Request) (scrapeRequest, string) {
	var req scrapeRequest
	if r.Method == http.MethodGet {
		req.Query = r.URL.Query().Get("query")
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, msgInvalidLimit
			}
			req.Limit = &n
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, msgInvalidBody
	}

	if err := s.validate.Struct(req); err != nil {
		return req, validationMessage(err)
	}
	req.Query = strings.TrimSpace(req.Query)
	queries := req.Queries[:0:0]
	for _, q := range req.Queries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	req.Queries = queries
	if req.Query == "" && len(req.Queries) == 0 {
		return req, msgQueryRequired
	}
	return req, ""
}

func (s *Server) handleScrapeJobs(w http.ResponseWriter, r *http.Request) {
	req, msg := s.parseScrapeRequest(r)
	if msg != "" {
		s.jsonError(w, http.StatusBadRequest, msg)
		return
	}

	var jobs []*scout.ScrapedJob
	var err error
	if len(req.Queries) > 0 {
		jobs, err = s.jobs.BatchScrapeJobs(r.Context(), req.Queries, req.limit())
	} else {
		jobs, err = s.jobs.ScrapeJobs(r.Context(), req.Query, req.limit())
	}
	if err == nil && s.jobStore != nil && len(jobs) > 0 {
		err = s.jobStore.CreateJobs(r.Context(), jobs)
	}
	if err != nil {
		s.scrapeError(w, r, err, "Failed to scrape jobs")
		return
	}

	if jobs == nil {
		jobs = []*scout.ScrapedJob{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"jobs":    jobs,
		"count":   len(jobs),
	})
}

func (s *Server) handleScrapeCourses(w http.ResponseWriter, r *http.Request) {
	req, msg := s.parseScrapeRequest(r)
	if msg != "" {
		s.jsonError(w, http.StatusBadRequest, msg)
		return
	}

	var courses []*scout.ScrapedCourse
	var err error
	if len(req.Queries) > 0 {
		courses, err = s.courses.BatchScrapeCourses(r.Context(), req.Queries, req.limit())
	} else {
		courses, err = s.courses.ScrapeCourses(r.Context(), req.Query, req.limit())
	}
	if err == nil && s.courseStore != nil && len(courses) > 0 {
		err = s.courseStore.CreateCourses(r.Context(), courses)
	}
	if err != nil {
		s.scrapeError(w, r, err, "Failed to scrape courses")
		return
	}

	if courses == nil {
		courses = []*scout.ScrapedCourse{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"courses": courses,
		"count":   len(courses),
	})
}

// scrapeError reports invalid input as 400 and anything else as a generic 500.
func (s *Server) scrapeError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	if scout.ErrorCode(err) == scout.EINVALID {
		s.jsonError(w, http.StatusBadRequest, scout.ErrorMessage(err))
		return
	}
	s.logger.Error("scrape request failed", "path", r.URL.Path, "err", err)
	s.jsonError(w, http.StatusInternalServerError, generic)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	page, msg := parsePage(r)
	if msg != "" {
		s.jsonError(w, http.StatusBadRequest, msg)
		return
	}
	filter := scout.JobFilter{Offset: page.offset, Limit: page.limit}
	if v := r.URL.Query().Get("source"); v != "" {
		filter.Source = &v
	}

	jobs, err := s.jobStore.FindJobs(r.Context(), filter)
	if err != nil {
		s.logger.Error("list jobs failed", "err", err)
		s.jsonError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []*scout.ScrapedJob{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobStore.FindJobByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.lookupError(w, err, "Failed to get job")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	page, msg := parsePage(r)
	if msg != "" {
		s.jsonError(w, http.StatusBadRequest, msg)
		return
	}
	filter := scout.CourseFilter{Offset: page.offset, Limit: page.limit}
	if v := r.URL.Query().Get("source"); v != "" {
		filter.Source = &v
	}

	courses, err := s.courseStore.FindCourses(r.Context(), filter)
	if err != nil {
		s.logger.Error("list courses failed", "err", err)
		s.jsonError(w, http.StatusInternalServerError, "Failed to list courses")
		return
	}
	if courses == nil {
		courses = []*scout.ScrapedCourse{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"courses": courses, "count": len(courses)})
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := s.courseStore.FindCourseByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.lookupError(w, err, "Failed to get course")
		return
	}
	s.jsonResponse(w, http.StatusOK, course)
}

func (s *Server) lookupError(w http.ResponseWriter, err error, generic string) {
	if scout.ErrorCode(err) == scout.ENOTFOUND {
		s.jsonError(w, http.StatusNotFound, scout.ErrorMessage(err))
		return
	}
	s.logger.Error("lookup failed", "err", err)
	s.jsonError(w, http.StatusInternalServerError, generic)
}

type page struct {
	limit  int
	offset int
}

func parsePage(r *http.Request) (page, string) {
	p := page{limit: DefaultLimit}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > MaxLimit {
			return p, msgInvalidLimit
		}
		p.limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, msgInvalidOffset
		}
		p.offset = n
	}
	return p, ""
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// validationMessage reports the first failed field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].StructField() == "Limit" {
			return msgInvalidLimit
		}
		return fmt.Sprintf("validation error: %s - %s", verrs[0].Field(), verrs[0].Tag())
	}
	return msgInvalidBody
}
