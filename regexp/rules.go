package regexp

import "regexp"

// JobRules holds the patterns used to pull job fields out of page content.
type JobRules struct {
	Title        *regexp.Regexp
	Company      []*regexp.Regexp
	Location     []*regexp.Regexp
	Description  *regexp.Regexp
	Salary       *regexp.Regexp
	Requirements *regexp.Regexp
	Skills       []string
}

// CourseRules holds the patterns used to pull course fields out of page content.
type CourseRules struct {
	Title       *regexp.Regexp
	Provider    []*regexp.Regexp
	Description *regexp.Regexp
	Price       *regexp.Regexp
	Rating      *regexp.Regexp
	Duration    *regexp.Regexp
	Level       *regexp.Regexp
	Skills      []string
}

// techSkills is the allow-list shared by jobs and courses.
var techSkills = []string{
	"javascript", "typescript", "python", "java", "react", "node.js",
	"angular", "vue", "sql", "mongodb", "postgresql", "aws", "azure",
	"docker", "kubernetes", "git", "html", "css", "golang", "rust",
	"c++", "c#", "ruby", "php", "swift", "kotlin", "graphql", "terraform",
}

// courseOnlySkills extends techSkills for course pages.
var courseOnlySkills = []string{
	"machine learning", "deep learning", "data science", "data analysis",
	"artificial intelligence", "statistics", "tableau", "excel",
	"ux design", "ui design", "figma", "product management",
}

// Shared field patterns.
var (
	descriptionRe = regexp.MustCompile(`(?i)description[^>]*>([^<]{100,500})`)
)

// DefaultJobRules returns the built-in job extraction patterns.
func DefaultJobRules() JobRules {
	return JobRules{
		Title: regexp.MustCompile(`(?i)<h[1-3][^>]*>([^<]*(?:developer|engineer|manager|analyst|designer)[^<]*)</h[1-3]>`),
		Company: []*regexp.Regexp{
			regexp.MustCompile(`(?i)company[^>]*>([^<]+)<`),
			regexp.MustCompile(`(?i)employer[^>]*>([^<]+)<`),
		},
		Location: []*regexp.Regexp{
			regexp.MustCompile(`(?i)location[^>]*>([^<]+)<`),
			regexp.MustCompile(`(?i)city[^>]*>([^<]+)<`),
		},
		Description: descriptionRe,
		// Groups: low amount, low multiplier, high amount, high multiplier.
		Salary:       regexp.MustCompile(`\$(\d+(?:,\d{3})*)([kK]\b)?(?:\s*(?:-|–|to)\s*\$?(\d+(?:,\d{3})*)([kK]\b)?)?`),
		Requirements: regexp.MustCompile(`(?i)(?:requirements|qualifications|must have|needed):\s*([^<]+)`),
		Skills:       techSkills,
	}
}

// DefaultCourseRules returns the built-in course extraction patterns.
func DefaultCourseRules() CourseRules {
	skills := make([]string, 0, len(techSkills)+len(courseOnlySkills))
	skills = append(skills, techSkills...)
	skills = append(skills, courseOnlySkills...)

	return CourseRules{
		Title: regexp.MustCompile(`(?i)<h[1-3][^>]*>([^<]*(?:course|tutorial|bootcamp|certification)[^<]*)</h[1-3]>`),
		Provider: []*regexp.Regexp{
			regexp.MustCompile(`(?i)instructor[^>]*>([^<]+)<`),
			regexp.MustCompile(`(?i)author[^>]*>([^<]+)<`),
		},
		Description: descriptionRe,
		Price:       regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`),
		Rating:      regexp.MustCompile(`(?i)(\d\.\d)\s*(?:stars?|rating)`),
		Duration:    regexp.MustCompile(`(?i)(\d+)\s*(hours?|weeks?|months?)\b`),
		Level:       regexp.MustCompile(`(?i)\b(beginner|intermediate|advanced|expert)\b`),
		Skills:      skills,
	}
}
