package scout

import (
	"fmt"
	"strings"
)

// FormatJobs formats jobs for terminal display.
// Jobs are separated by blank lines.
func FormatJobs(jobs []*ScrapedJob) string {
	parts := make([]string, 0, len(jobs))
	for _, j := range jobs {
		var b strings.Builder
		b.WriteString("## " + j.Title + "\n")
		b.WriteString(joinNonEmpty(" | ", j.Company, j.Location, j.Source) + "\n")
		if j.Salary != nil {
			fmt.Fprintf(&b, "Salary: %.0f-%.0f %s\n", j.Salary.Min, j.Salary.Max, j.Salary.Currency)
		}
		if len(j.Skills) > 0 {
			b.WriteString("Skills: " + strings.Join(j.Skills, ", ") + "\n")
		}
		b.WriteString(j.URL)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

// FormatCourses formats courses for terminal display.
func FormatCourses(courses []*ScrapedCourse) string {
	parts := make([]string, 0, len(courses))
	for _, c := range courses {
		var b strings.Builder
		b.WriteString("## " + c.Title + "\n")
		b.WriteString(joinNonEmpty(" | ", c.Provider, string(c.Level), c.Duration) + "\n")
		var extras []string
		if c.Price != nil {
			extras = append(extras, fmt.Sprintf("Price: %.2f", *c.Price))
		}
		if c.Rating != nil {
			extras = append(extras, fmt.Sprintf("Rating: %.1f", *c.Rating))
		}
		if len(extras) > 0 {
			b.WriteString(strings.Join(extras, " | ") + "\n")
		}
		if len(c.Skills) > 0 {
			b.WriteString("Skills: " + strings.Join(c.Skills, ", ") + "\n")
		}
		b.WriteString(c.URL)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

func joinNonEmpty(sep string, fields ...string) string {
	kept := fields[:0:0]
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, sep)
}
