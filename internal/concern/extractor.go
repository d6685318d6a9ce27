// Package concern extracts a child's age and a developmental concern from free
// text using fixed patterns and keywords. It does no language understanding:
// the first matching pattern or keyword wins.
package concern

import (
	"regexp"
	"strconv"
	"strings"

	"nurture/internal/milestone/models"
)

// Concern is the topic a caregiver asked about.
type Concern struct {
	Topic   string        // e.g. "crawling"
	Domain  models.Domain // domain the topic belongs to
	Keyword string        // the keyword that matched
}

var monthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*months?\s+old`),
	regexp.MustCompile(`(\d+)\s*months?`),
	regexp.MustCompile(`(\d+)-month`),
}

var yearPattern = regexp.MustCompile(`(\d+)\s*years?\s+old`)

// MaxAgeMonths bounds an extracted age; anything larger is treated as no age.
const MaxAgeMonths = 240

type topic struct {
	name     string
	domain   models.Domain
	keywords []string
}

// topics is scanned in declaration order. A message mentioning several topics
// resolves to the first one listed here.
var topics = []topic{
	{"crawling", models.DomainMotor, []string{"crawl", "crawling", "creep", "moving"}},
	{"walking", models.DomainMotor, []string{"walk", "walking", "steps", "stand"}},
	{"sitting", models.DomainMotor, []string{"sit", "sitting"}},
	{"talking", models.DomainLanguage, []string{"talk", "talking", "speak", "speaking", "words", "saying"}},
	{"babbling", models.DomainLanguage, []string{"babble", "babbling", "sounds", "coo"}},
	{"grasping", models.DomainMotor, []string{"grasp", "grasping", "hold", "holding", "pick up"}},
	{"social", models.DomainSocial, []string{"smile", "smiling", "respond", "eye contact", "stranger"}},
}

// ExtractAge returns the age in months mentioned in text. Month patterns are
// tried first, in order; "N years old" is converted to months. The first
// matching pattern decides: an age above MaxAgeMonths yields no age.
func ExtractAge(text string) (int, bool) {
	lower := strings.ToLower(text)
	for _, re := range monthPatterns {
		if n, ok := firstNumber(re, lower); ok {
			return bounded(n)
		}
	}
	if n, ok := firstNumber(yearPattern, lower); ok {
		if n > MaxAgeMonths/12 {
			return 0, false
		}
		return bounded(n * 12)
	}
	return 0, false
}

func bounded(months int) (int, bool) {
	if months < 0 || months > MaxAgeMonths {
		return 0, false
	}
	return months, true
}

func firstNumber(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractConcern returns the first topic whose keyword appears in text,
// matched case-insensitively as a substring.
func ExtractConcern(text string) (Concern, bool) {
	lower := strings.ToLower(text)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return Concern{Topic: t.name, Domain: t.domain, Keyword: kw}, true
			}
		}
	}
	return Concern{}, false
}

// DomainOf is ExtractConcern reduced to a domain, "general" when nothing matched.
func DomainOf(text string) models.Domain {
	if c, ok := ExtractConcern(text); ok {
		return c.Domain
	}
	return models.DomainGeneral
}
