package activity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"nurture/internal/milestone/models"
)

var pickerRecords = []Record{
	{Domain: models.DomainMotor, MinAge: 6, MaxAge: 12, Text: "crawl tip"},
	{Domain: models.DomainMotor, MinAge: 12, MaxAge: 24, Text: "walk tip"},
	{Domain: models.DomainLanguage, MinAge: 0, MaxAge: 36, Text: "talk tip"},
	{Domain: models.DomainGeneral, MinAge: 0, MaxAge: 24, Text: "general tip"},
}

func texts(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Text
	}
	return out
}

func TestCandidates(t *testing.T) {
	p := NewPicker(pickerRecords, nil)

	t.Run("domain and general records covering the age", func(t *testing.T) {
		assert.Equal(t, []string{"crawl tip", "walk tip", "general tip"}, texts(p.Candidates(models.DomainMotor, 12)))
	})

	t.Run("age bounds are inclusive", func(t *testing.T) {
		assert.Equal(t, []string{"crawl tip", "general tip"}, texts(p.Candidates(models.DomainMotor, 6)))
	})

	t.Run("unknown domain falls back to general", func(t *testing.T) {
		assert.Equal(t, []string{"general tip"}, texts(p.Candidates(models.DomainCognitive, 10)))
	})

	t.Run("nothing covers the age", func(t *testing.T) {
		assert.Empty(t, p.Candidates(models.DomainMotor, 30))
	})
}

func TestPick(t *testing.T) {
	t.Run("injected source selects deterministically", func(t *testing.T) {
		var gotN int
		p := NewPicker(pickerRecords, func(n int) int {
			gotN = n
			return n - 1
		})
		assert.Equal(t, "general tip", p.Pick(models.DomainMotor, 12))
		assert.Equal(t, 3, gotN)
	})

	t.Run("fallback when no record matches", func(t *testing.T) {
		p := NewPicker(pickerRecords, func(int) int { t.Fatal("source must not be called"); return 0 })
		assert.Equal(t, FallbackTip, p.Pick(models.DomainLanguage, 40))
	})

	t.Run("empty picker", func(t *testing.T) {
		assert.Equal(t, FallbackTip, NewPicker(nil, nil).Pick(models.DomainMotor, 6))
	})

	t.Run("default source only returns candidates", func(t *testing.T) {
		p := NewPicker(pickerRecords, nil)
		allowed := []string{"crawl tip", "walk tip", "general tip"}
		for range 50 {
			assert.Contains(t, allowed, p.Pick(models.DomainMotor, 12))
		}
	})

	t.Run("shared picker is safe for concurrent use", func(t *testing.T) {
		p := NewPicker(pickerRecords, nil)
		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					_ = p.Pick(models.DomainLanguage, 18)
				}
			}()
		}
		wg.Wait()
	})

	t.Run("records are copied on construction", func(t *testing.T) {
		src := append([]Record(nil), pickerRecords...)
		p := NewPicker(src, func(int) int { return 0 })
		src[2].Text = "mutated"
		assert.Equal(t, "talk tip", p.Pick(models.DomainLanguage, 30))
	})
}
