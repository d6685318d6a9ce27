package catalog_test

//go:generate mockgen -source=catalog.go -destination=mocks/mock_source.go -package=mocks Source

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"nurture/internal/milestone/catalog"
	"nurture/internal/milestone/catalog/mocks"
	"nurture/internal/milestone/models"
	"nurture/pkg/platform/sentinel"
)

// =============================================================================
// Catalog Test Suite
// =============================================================================
// Justification for unit tests: the catalog decides which milestones are in
// scope for an age. Window edges, the grace period and source ordering feed
// every evaluation, so they are pinned here against the embedded catalog.

type CatalogSuite struct {
	suite.Suite
	ctx     context.Context
	catalog *catalog.Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupTest() {
	s.ctx = context.Background()
	c, err := catalog.LoadDefault(s.ctx)
	s.Require().NoError(err)
	s.catalog = c
}

func ids(ms []models.Milestone) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

// =============================================================================
// ExpectedFor
// =============================================================================

func (s *CatalogSuite) TestExpectedFor() {
	s.Run("twelve months covers motor and first words in source order", func() {
		got := ids(s.catalog.ExpectedFor(12))
		want := []string{"M_6M_001", "M_9M_001", "M_12M_001", "L_12M_002"}
		s.Empty(cmp.Diff(want, got))
	})

	s.Run("twenty four months keeps only language milestones", func() {
		got := ids(s.catalog.ExpectedFor(24))
		want := []string{"L_12M_002", "L_24M_003", "L_24M_004"}
		s.Empty(cmp.Diff(want, got))
	})

	s.Run("min bound is inclusive", func() {
		s.Equal([]string{"M_6M_001"}, ids(s.catalog.ExpectedFor(4)))
	})

	s.Run("below every window yields nothing", func() {
		s.Empty(s.catalog.ExpectedFor(3))
	})

	s.Run("grace keeps a milestone six months past max", func() {
		s.Contains(ids(s.catalog.ExpectedFor(14)), "M_6M_001")
		s.NotContains(ids(s.catalog.ExpectedFor(15)), "M_6M_001")
	})

	s.Run("beyond every grace window yields nothing", func() {
		s.Empty(s.catalog.ExpectedFor(37))
	})
}

func (s *CatalogSuite) TestAccessors() {
	s.Run("len and domains", func() {
		s.Equal(6, s.catalog.Len())
		s.Equal([]models.Domain{models.DomainMotor, models.DomainLanguage}, s.catalog.Domains())
	})

	s.Run("get known id", func() {
		m, err := s.catalog.Get("L_24M_003")
		s.Require().NoError(err)
		s.True(m.RedFlag)
		s.Equal("Uses at least 50 words", m.Description)
	})

	s.Run("get unknown id", func() {
		_, err := s.catalog.Get("S_99M_001")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("in domain filters and keeps order", func() {
		s.Equal([]string{"M_6M_001", "M_9M_001", "M_12M_001"}, ids(s.catalog.InDomain(models.DomainMotor)))
		s.Empty(s.catalog.InDomain(models.DomainSocial))
	})

	s.Run("returned slices do not alias catalog state", func() {
		all := s.catalog.All()
		all[0].Options[0].Label = "Maybe"
		all[0].ID = "changed"

		again, err := s.catalog.Get("M_6M_001")
		s.Require().NoError(err)
		s.Equal("Yes", again.Options[0].Label)
	})
}

// =============================================================================
// Load
// =============================================================================
// Justification: Load is the single fail-fast gate in front of every request;
// mocks let us drive the source failure paths without touching disk.

func (s *CatalogSuite) TestLoad() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	s.Run("source error is wrapped", func() {
		src := mocks.NewMockSource(ctrl)
		boom := errors.New("connection refused")
		src.EXPECT().Records(gomock.Any()).Return(nil, boom)
		src.EXPECT().Name().Return("mock").AnyTimes()

		c, err := catalog.Load(s.ctx, src)
		s.Nil(c)
		s.ErrorIs(err, boom)
	})

	s.Run("empty source is rejected", func() {
		src := mocks.NewMockSource(ctrl)
		src.EXPECT().Records(gomock.Any()).Return([]catalog.Record{}, nil)
		src.EXPECT().Name().Return("mock").AnyTimes()

		_, err := catalog.Load(s.ctx, src)
		s.ErrorIs(err, sentinel.ErrEmptySource)
	})

	s.Run("one bad record aborts the whole load", func() {
		good := catalog.RecordFromMilestone(validMilestone("M_6M_001"))
		bad := catalog.RecordFromMilestone(validMilestone("M_9M_001"))
		bad.Options = nil

		src := mocks.NewMockSource(ctrl)
		src.EXPECT().Records(gomock.Any()).Return([]catalog.Record{good, bad}, nil)
		src.EXPECT().Name().Return("mock").AnyTimes()

		c, err := catalog.Load(s.ctx, src)
		s.Nil(c)
		s.ErrorIs(err, catalog.ErrSchemaViolation)

		var sv *catalog.SchemaViolationError
		s.Require().ErrorAs(err, &sv)
		s.Require().Len(sv.Violations, 1)
		s.Equal(1, sv.Violations[0].Index)
		s.Equal("M_9M_001", sv.Violations[0].MilestoneID)
		s.Equal("options", sv.Violations[0].Field)
	})

	s.Run("new validates inline milestones", func() {
		m := validMilestone("M_6M_001")
		m.AgeRange = models.AgeRange{Min: 8, Typical: 6, Max: 4}
		_, err := catalog.New(m)
		s.ErrorIs(err, catalog.ErrSchemaViolation)
	})
}

func validMilestone(id string) models.Milestone {
	return models.Milestone{
		ID:          id,
		AgeRange:    models.AgeRange{Min: 4, Typical: 6, Max: 8},
		Domain:      models.DomainMotor,
		Subdomain:   "gross_motor",
		Description: "Sits without support",
		Options:     []models.Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}},
	}
}
