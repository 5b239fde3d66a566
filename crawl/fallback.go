package crawl

import (
	"strings"
	"unicode"

	"github.com/fwojciec/scout"
)

// FallbackSource is the Source of every synthetic record.
const FallbackSource = "Fallback"

// FallbackJobs returns the synthetic jobs used to top up a thin result set.
func FallbackJobs(query string) []*scout.ScrapedJob {
	slug := slugify(query)
	return []*scout.ScrapedJob{
		{
			Title:       "Senior " + query + " Developer",
			Company:     "TechCorp",
			Location:    "Remote",
			Description: "Join our team as a Senior " + query + " Developer and build production systems alongside an experienced, collaborative engineering group.",
			Requirements: []string{
				"3+ years of " + query + " experience",
				"Strong problem-solving skills",
				"Experience with modern development tools",
			},
			Skills: uniqueLower(query, "git", "sql"),
			Salary: &scout.SalaryRange{Min: 120000, Max: 160000, Currency: "USD"},
			URL:    "https://example.com/jobs/senior-" + slug + "-developer",
			Source: FallbackSource,
		},
		{
			Title:       query + " Engineer",
			Company:     "InnovateLabs",
			Location:    "San Francisco, CA",
			Description: "We are hiring a " + query + " Engineer to design, ship and maintain features across our product, with a focus on quality and reliability.",
			Requirements: []string{
				"Professional experience with " + query,
				"Familiarity with automated testing",
				"Clear written and verbal communication",
			},
			Skills: uniqueLower(query, "git", "sql"),
			Salary: &scout.SalaryRange{Min: 100000, Max: 140000, Currency: "USD"},
			URL:    "https://example.com/jobs/" + slug + "-engineer",
			Source: FallbackSource,
		},
	}
}

// FallbackCourses returns the synthetic courses used to top up a thin result set.
func FallbackCourses(query string) []*scout.ScrapedCourse {
	slug := slugify(query)
	bootcampPrice, bootcampRating := 89.99, 4.7
	fundamentalsPrice, fundamentalsRating := 49.99, 4.5
	return []*scout.ScrapedCourse{
		{
			Title:       "Complete " + query + " Bootcamp",
			Provider:    "Online Academy",
			Description: "Go from the basics of " + query + " to building real projects, with hands-on exercises and a capstone.",
			Skills:      uniqueLower(query),
			Level:       scout.LevelBeginner,
			Duration:    "40 hours",
			Price:       &bootcampPrice,
			Rating:      &bootcampRating,
			URL:         "https://example.com/courses/complete-" + slug + "-bootcamp",
			Source:      FallbackSource,
		},
		{
			Title:       query + " Fundamentals Course",
			Provider:    "Tech Institute",
			Description: "A structured introduction to the core concepts of " + query + ", taught through short lessons and quizzes.",
			Skills:      uniqueLower(query),
			Level:       scout.LevelIntermediate,
			Duration:    "6 weeks",
			Price:       &fundamentalsPrice,
			Rating:      &fundamentalsRating,
			URL:         "https://example.com/courses/" + slug + "-fundamentals",
			Source:      FallbackSource,
		},
	}
}

// slugify lower-cases s and joins its alphanumeric runs with hyphens.
func slugify(s string) string {
	var sb strings.Builder
	prevHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if !prevHyphen {
			sb.WriteRune('-')
			prevHyphen = true
		}
	}
	slug := strings.TrimSuffix(sb.String(), "-")
	if slug == "" {
		return "general"
	}
	return slug
}

// uniqueLower lower-cases values and drops blanks and duplicates.
func uniqueLower(values ...string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
