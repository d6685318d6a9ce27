package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"nurture/internal/activity"
	"nurture/internal/evaluation"
	"nurture/internal/milestone/catalog"
	"nurture/pkg/testutil"
)

// HandlerSuite exercises the evaluation endpoints through a chi router.
//
// Justification: the engine is pure and cheap, so handler tests use the real
// engine over the embedded catalogs instead of mocks.
type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctx := context.Background()
	cat, err := catalog.LoadDefault(ctx)
	s.Require().NoError(err)
	acts, err := activity.LoadCatalog(ctx, "")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := New(evaluation.NewEngine(cat, acts), cat, logger, nil)

	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func (s *HandlerSuite) post(body any) *http.Request {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/evaluate", body)
	return testutil.WithRequestID(req, "req-test")
}

// =============================================================================
// POST /evaluate
// =============================================================================

func (s *HandlerSuite) TestEvaluate() {
	s.Run("needs support scenario", func() {
		rr := testutil.DoRequest(s.router, s.post(map[string]any{
			"child_age_months":     12,
			"completed_milestones": []string{"M_6M_001", "M_9M_001"},
			"child_name":           "Asha",
		}))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[EvaluateResponse](s.T(), rr)
		s.Equal("Needs Support", resp.Result)
		s.Equal(50.0, resp.CompletionRate)
		s.Equal(4, resp.TotalExpected)
		s.Equal(2, resp.TotalCompleted)
		s.Len(resp.MissingMilestones, 2)
		s.Equal("M_12M_001", resp.MissingMilestones[0].MilestoneID)
		s.Equal("gross_motor", resp.MissingMilestones[0].Subdomain)
		s.NotNil(resp.RedFlags)
		s.Contains(resp.Message, "Asha (12 months)")
	})

	s.Run("no data keeps lists non-null", func() {
		rr := testutil.DoRequest(s.router, s.post(map[string]any{
			"child_age_months":     2,
			"completed_milestones": []string{},
		}))

		testutil.AssertStatusOK(s.T(), rr)
		body := string(testutil.ReadBody(s.T(), rr))
		s.Contains(body, `"result":"No Data"`)
		s.Contains(body, `"missing_milestones":[]`)
		s.Contains(body, `"recommendations":[]`)
	})

	s.Run("missing age is a validation error", func() {
		rr := testutil.DoRequest(s.router, s.post(map[string]any{
			"completed_milestones": []string{"M_6M_001"},
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
	})

	s.Run("negative age is a validation error", func() {
		rr := testutil.DoRequest(s.router, s.post(map[string]any{"child_age_months": -1}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
	})

	s.Run("malformed body is a bad request", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/evaluate", `{"child_age_months":`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

// =============================================================================
// GET /milestones
// =============================================================================

func (s *HandlerSuite) TestListMilestones() {
	s.Run("lists expected milestones in catalog order", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/milestones?age_months=24"))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[MilestonesResponse](s.T(), rr)
		s.Equal(24, resp.AgeMonths)
		ids := make([]string, len(resp.Milestones))
		for i, m := range resp.Milestones {
			ids[i] = m.MilestoneID
		}
		s.Equal([]string{"L_12M_002", "L_24M_003", "L_24M_004"}, ids)
		s.True(resp.Milestones[1].RedFlag)
		s.Len(resp.Milestones[1].Options, 2)
	})

	s.Run("rejects a missing or invalid age", func() {
		for _, path := range []string{"/milestones", "/milestones?age_months=abc", "/milestones?age_months=-3"} {
			rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, path))
			testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
		}
	})
}

func TestEvaluateRequestNormalize(t *testing.T) {
	age := 12
	req := &EvaluateRequest{
		ChildAgeMonths:      &age,
		CompletedMilestones: []string{" M_6M_001", "M_6M_001", ""},
		ChildName:           "  Ravi  ",
	}
	req.Normalize()

	in := req.Input()
	if in.ChildName != "Ravi" || len(in.Completed) != 1 || in.Completed[0] != "M_6M_001" {
		t.Fatalf("unexpected normalized input: %+v", in)
	}
}
