package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nurture/pkg/testutil"
)

func TestAgeGroup(t *testing.T) {
	cases := map[int]string{0: "0-6m", 6: "0-6m", 7: "7-12m", 12: "7-12m", 18: "13-18m", 24: "19-24m", 30: "25-30m", 31: "31-36m", 48: "31-36m"}
	for age, want := range cases {
		assert.Equal(t, want, AgeGroup(age), "age %d", age)
	}
}

func TestDomainFromID(t *testing.T) {
	cases := map[string]string{"M_9M_001": "motor", "L_24M_003": "language", "s_12M_001": "social", "C_1": "unknown", "": "unknown"}
	for id, want := range cases {
		assert.Equal(t, want, DomainFromID(id), id)
	}
}

func TestSummarize(t *testing.T) {
	m, err := ReadManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	s := Summarize(m)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.MissingAge)
	assert.Zero(t, s.MissingFilename)

	want := []Count{{"7-12m", 1}, {"19-24m", 1}, {"31-36m", 1}, {"unknown", 1}}
	if diff := cmp.Diff(want, s.AgeGroups); diff != "" {
		t.Errorf("age groups mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Count{{"language", 1}, {"motor", 2}, {"social", 1}}, s.Domains); diff != "" {
		t.Errorf("domains mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Count{{"no", 1}, {"yes", 2}}, s.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, s.CrossTab["unknown"]["social"])
}

func TestTopMilestonesKeepFirstSeenOrderOnTies(t *testing.T) {
	var b strings.Builder
	b.WriteString("filename,child_age,milestone_id\n")
	for i := range 12 {
		fmt.Fprintf(&b, "v%d.mp4,10,M_%02d\n", i, i)
	}
	b.WriteString("extra.mp4,10,M_11\n")

	m, err := ReadManifest(strings.NewReader(b.String()))
	require.NoError(t, err)
	top := Summarize(m).TopMilestones

	require.Len(t, top, 10)
	assert.Equal(t, Count{"M_11", 2}, top[0])
	assert.Equal(t, "M_00", top[1].Key)
	assert.Equal(t, "M_08", top[9].Key)
	assert.Nil(t, Summarize(m).Labels, "no label column, no label distribution")
}

func TestRender(t *testing.T) {
	testutil.Given(t, "a summarized manifest", func(t *testing.T) {
		m, err := ReadManifest(strings.NewReader(sampleManifest))
		require.NoError(t, err)
		s := Summarize(m)

		testutil.When(t, "the report is rendered", func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, s.Render(&buf, fixedNow))
			out := buf.String()

			testutil.Then(t, "every section is present", func(t *testing.T) {
				assert.Contains(t, out, "Generated: 2024-03-01 09:30:15")
				assert.Contains(t, out, "Total Videos: 4")
				assert.Contains(t, out, "DISTRIBUTION BY LABEL")
				assert.Contains(t, out, "TOP 10 MILESTONES")
				assert.Contains(t, out, "Missing ages:          1")
				assert.Contains(t, out, "motor | ", "domain rows carry counts")
				assert.Contains(t, out, strings.Repeat("█", 25), "50% renders 25 blocks")
			})
		})
	})
}

func TestWriteDeidentified(t *testing.T) {
	m, err := ReadManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	t.Run("requires hashed names", func(t *testing.T) {
		assert.Error(t, WriteDeidentified(&bytes.Buffer{}, m, nil))
	})

	t.Run("replaces filenames and keeps originals", func(t *testing.T) {
		hashed := []string{"h1.mp4", "h2.mov", "h3.mp4", "h4.mp4"}
		var buf bytes.Buffer
		require.NoError(t, WriteDeidentified(&buf, m, hashed))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 5)
		assert.Equal(t, []string{"filename", "child_age", "milestone_id", "label", "notes", "original_filename"}, records[0])
		assert.Equal(t, []string{"h1.mp4", "8", "M_9M_001", "yes", "first", "vid1.mp4"}, records[1])
		assert.Equal(t, "vid4.mp4", records[4][5])
	})
}
