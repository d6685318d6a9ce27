// Package activity holds the stimulation-activity catalog (ordered buckets per
// domain and subdomain) and the age-ranged recommendation records used for
// randomized chat tips.
package activity

import (
	"fmt"

	"nurture/internal/milestone/models"
)

// Bucket is the ordered activity list of one (domain, subdomain) pair.
type Bucket struct {
	Domain     models.Domain
	Subdomain  string
	Activities []string
}

type bucketKey struct {
	domain    models.Domain
	subdomain string
}

// Catalog is an immutable, source-ordered set of activity buckets.
type Catalog struct {
	buckets []Bucket
	index   map[bucketKey]int
	first   map[models.Domain]int
}

// NewCatalog indexes buckets, keeping source order. A domain's first bucket is
// the first one listed for it.
func NewCatalog(buckets []Bucket) (*Catalog, error) {
	c := &Catalog{
		buckets: make([]Bucket, 0, len(buckets)),
		index:   make(map[bucketKey]int, len(buckets)),
		first:   make(map[models.Domain]int),
	}
	for _, b := range buckets {
		if b.Domain == "" || b.Subdomain == "" {
			return nil, fmt.Errorf("activity bucket needs domain and subdomain, got %q/%q", b.Domain, b.Subdomain)
		}
		k := bucketKey{b.Domain, b.Subdomain}
		if _, dup := c.index[k]; dup {
			return nil, fmt.Errorf("duplicate activity bucket %s/%s", b.Domain, b.Subdomain)
		}
		c.index[k] = len(c.buckets)
		if _, ok := c.first[b.Domain]; !ok {
			c.first[b.Domain] = len(c.buckets)
		}
		c.buckets = append(c.buckets, Bucket{
			Domain:     b.Domain,
			Subdomain:  b.Subdomain,
			Activities: append([]string(nil), b.Activities...),
		})
	}
	return c, nil
}

// Bucket returns the activities of one subdomain.
func (c *Catalog) Bucket(domain models.Domain, subdomain string) ([]string, bool) {
	i, ok := c.index[bucketKey{domain, subdomain}]
	if !ok {
		return nil, false
	}
	return c.buckets[i].Activities, true
}

// FirstBucket returns the activities of the domain's first listed subdomain.
func (c *Catalog) FirstBucket(domain models.Domain) ([]string, bool) {
	i, ok := c.first[domain]
	if !ok {
		return nil, false
	}
	return c.buckets[i].Activities, true
}

// Take returns up to n activities from the domain's first bucket. Unknown
// domains yield nothing.
func (c *Catalog) Take(domain models.Domain, n int) []string {
	acts, _ := c.FirstBucket(domain)
	return head(acts, n)
}

// ForMilestone returns up to n activities for a milestone: its own subdomain
// bucket when one exists, otherwise its domain's first bucket.
func (c *Catalog) ForMilestone(m models.Milestone, n int) []string {
	if m.Subdomain != "" {
		if acts, ok := c.Bucket(m.Domain, m.Subdomain); ok {
			return head(acts, n)
		}
	}
	return c.Take(m.Domain, n)
}

// Buckets returns a copy of every bucket in source order.
func (c *Catalog) Buckets() []Bucket {
	out := make([]Bucket, len(c.buckets))
	for i, b := range c.buckets {
		b.Activities = append([]string(nil), b.Activities...)
		out[i] = b
	}
	return out
}

// Len is the number of buckets.
func (c *Catalog) Len() int {
	return len(c.buckets)
}

func head(acts []string, n int) []string {
	if n <= 0 || len(acts) == 0 {
		return nil
	}
	if len(acts) > n {
		acts = acts[:n]
	}
	return append([]string(nil), acts...)
}
