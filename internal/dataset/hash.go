package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// ErrMissingSalt is returned when no hash salt is configured.
var ErrMissingSalt = errors.New("VIDEO_HASH_SALT is not set; add it to your environment or .env file, e.g. VIDEO_HASH_SALT=your-random-secret-salt-here")

const hashLength = 16

// Hasher derives de-identified file names. The current time is mixed into
// every hash, so names are unique per run and cannot be recomputed later; the
// mapping file is the only link back to the original.
type Hasher struct {
	salt string
	now  func() time.Time
}

// HasherOption configures a Hasher.
type HasherOption func(*Hasher)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) HasherOption {
	return func(h *Hasher) {
		h.now = now
	}
}

// NewHasher requires a non-blank salt.
func NewHasher(salt string, opts ...HasherOption) (*Hasher, error) {
	if strings.TrimSpace(salt) == "" {
		return nil, ErrMissingSalt
	}
	h := &Hasher{salt: salt, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Hash returns the first 16 hex characters of
// sha256("salt_filename_age_milestone_timestamp").
func (h *Hasher) Hash(filename, age, milestoneID string) string {
	ts := h.now().Format("2006-01-02T15:04:05.000000")
	sum := sha256.Sum256([]byte(h.salt + "_" + filename + "_" + age + "_" + milestoneID + "_" + ts))
	return hex.EncodeToString(sum[:])[:hashLength]
}

// HashedName is Hash plus the original extension.
func (h *Hasher) HashedName(filename, age, milestoneID string) string {
	return h.Hash(filename, age, milestoneID) + filepath.Ext(filename)
}
