// Package regexp extracts job and course records from listing pages using
// fixed regular-expression rules. The rules are tuned to common listing
// markup and are best-effort: only the title is required, every other
// field falls back to a default.
package regexp

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/scout"
)

// Ensure Extractor implements the scout extractor interfaces at compile time.
var (
	_ scout.JobExtractor    = (*Extractor)(nil)
	_ scout.CourseExtractor = (*Extractor)(nil)
)

// Defaults for fields that are not found on the page.
const (
	DefaultCompany     = "Unknown Company"
	DefaultLocation    = "Remote"
	DefaultDescription = "No description available"
	DefaultCurrency    = "USD"
)

const (
	maxRequirements      = 5
	minRequirementLength = 10
)

var (
	requirementSplitRe = regexp.MustCompile(`[,;•\n]`)
	elementNameRe      = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9-]*`)
)

// Extractor extracts records from page content.
// Extractor is safe for concurrent use; its rules are never modified.
type Extractor struct {
	jobs    JobRules
	courses CourseRules
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithJobRules replaces the default job rules.
func WithJobRules(r JobRules) Option {
	return func(e *Extractor) {
		e.jobs = r
	}
}

// WithCourseRules replaces the default course rules.
func WithCourseRules(r CourseRules) Option {
	return func(e *Extractor) {
		e.courses = r
	}
}

// NewExtractor creates an Extractor using the default rules.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		jobs:    DefaultJobRules(),
		courses: DefaultCourseRules(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractJob parses content into a job. It returns false if no heading
// contains a recognized role keyword.
func (e *Extractor) ExtractJob(content, sourceURL, siteName string) (*scout.ScrapedJob, bool) {
	title := capture(e.jobs.Title, content)
	if title == "" {
		return nil, false
	}

	return &scout.ScrapedJob{
		Title:        title,
		Company:      firstCapture(e.jobs.Company, content, DefaultCompany),
		Location:     firstCapture(e.jobs.Location, content, DefaultLocation),
		Description:  orDefault(capture(e.jobs.Description, content), DefaultDescription),
		Requirements: extractRequirements(e.jobs.Requirements, content),
		Skills:       matchSkills(e.jobs.Skills, content),
		Salary:       extractSalary(e.jobs.Salary, content),
		URL:          sourceURL,
		Source:       siteName,
	}, true
}

// ExtractCourse parses content into a course. It returns false if no heading
// contains a recognized course keyword.
func (e *Extractor) ExtractCourse(content, sourceURL, siteName string) (*scout.ScrapedCourse, bool) {
	title := capture(e.courses.Title, content)
	if title == "" {
		return nil, false
	}

	course := &scout.ScrapedCourse{
		Title:       title,
		Provider:    firstCapture(e.courses.Provider, content, siteName),
		Description: orDefault(capture(e.courses.Description, content), DefaultDescription),
		Skills:      matchSkills(e.courses.Skills, content),
		Level:       scout.ParseLevel(capture(e.courses.Level, content)),
		Duration:    extractDuration(e.courses.Duration, content),
		URL:         sourceURL,
		Source:      siteName,
	}
	if v, ok := captureFloat(e.courses.Price, content); ok {
		course.Price = &v
	}
	if v, ok := captureFloat(e.courses.Rating, content); ok {
		course.Rating = &v
	}
	return course, true
}

// capture returns the first submatch of re, unescaped and trimmed.
func capture(re *regexp.Regexp, content string) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(content)
	if len(m) < 2 {
		return ""
	}
	return cleanText(m[1])
}

// firstCapture tries each pattern in order and returns def if none match.
func firstCapture(res []*regexp.Regexp, content, def string) string {
	for _, re := range res {
		if v := capture(re, content); v != "" {
			return v
		}
	}
	return def
}

func captureFloat(re *regexp.Regexp, content string) (float64, bool) {
	s := capture(re, content)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// cleanText unescapes HTML entities and collapses whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// extractSalary parses a "$low - $high" band. A trailing k or K multiplies
// its amount by 1000. A single amount yields Min == Max.
func extractSalary(re *regexp.Regexp, content string) *scout.SalaryRange {
	if re == nil {
		return nil
	}
	m := re.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	low, ok := parseAmount(m[1], m[2])
	if !ok {
		return nil
	}
	high := low
	if len(m) > 4 && m[3] != "" {
		if v, ok := parseAmount(m[3], m[4]); ok {
			high = v
		}
	}
	return &scout.SalaryRange{Min: low, Max: high, Currency: DefaultCurrency}
}

func parseAmount(digits, multiplier string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(digits, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if multiplier != "" {
		v *= 1000
	}
	return v, true
}

// extractRequirements splits every labeled requirements block into items,
// keeping items longer than minRequirementLength characters, in page order.
func extractRequirements(re *regexp.Regexp, content string) []string {
	if re == nil {
		return nil
	}
	var items []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		for _, part := range requirementSplitRe.Split(m[1], -1) {
			item := cleanText(part)
			if utf8.RuneCountInString(item) > minRequirementLength {
				items = append(items, item)
			}
		}
	}
	if len(items) > maxRequirements {
		items = items[:maxRequirements]
	}
	return items
}

// extractDuration returns a "<n> <unit>" string or scout.DefaultDuration.
func extractDuration(re *regexp.Regexp, content string) string {
	if re == nil {
		return scout.DefaultDuration
	}
	m := re.FindStringSubmatch(content)
	if len(m) < 3 {
		return scout.DefaultDuration
	}
	return m[1] + " " + strings.ToLower(m[2])
}

// matchSkills returns the allow-listed skills mentioned anywhere in content,
// attribute values included, lower-cased and without duplicates. Element
// names are ignored so "<html>" never counts as a skill. A skill only matches
// when it is not embedded in a longer word, so "java" does not match
// "javascript".
func matchSkills(skills []string, content string) []string {
	lower := strings.ToLower(elementNameRe.ReplaceAllString(content, " "))
	seen := make(map[string]bool, len(skills))
	var found []string
	for _, skill := range skills {
		s := strings.ToLower(skill)
		if s == "" || seen[s] {
			continue
		}
		if containsTerm(lower, s) {
			seen[s] = true
			found = append(found, s)
		}
	}
	return found
}

// containsTerm reports whether term occurs in s with no letter or digit
// directly before or after it.
func containsTerm(s, term string) bool {
	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], term)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(term)
		if !isWordRune(lastRune(s[:start])) && !isWordRune(firstRune(s[end:])) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
