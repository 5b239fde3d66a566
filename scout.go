// Package scout scrapes job and course listings for a career-coaching
// backend. Listing pages are fetched from a fixed set of sites, parsed with
// regular-expression extraction rules, and topped up with template-generated
// fallback records when live extraction comes up short.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, firecrawl/, redis/).
package scout
