package evaluation

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GetResponseField(field string) (interface{}, error)
}

// RegisterSteps registers milestone evaluation steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &evaluationSteps{tc: tc}
	ctx.Step(`^I evaluate a (\d+) month old who completed "([^"]*)"$`, steps.evaluate)
	ctx.Step(`^I evaluate a (\d+) month old who completed nothing$`, steps.evaluateNone)
	ctx.Step(`^the result should be "([^"]*)"$`, steps.resultShouldBe)
	ctx.Step(`^the completion rate should be ([\d.]+)$`, steps.rateShouldBe)
	ctx.Step(`^"([^"]*)" should be reported as a red flag$`, steps.shouldBeRedFlag)
	ctx.Step(`^there should be at most (\d+) recommendations$`, steps.atMostRecommendations)
}

type evaluationSteps struct {
	tc TestContext
}

func (s *evaluationSteps) evaluate(age int, completed string) error {
	var ids []string
	for _, id := range strings.Split(completed, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return s.post(age, ids)
}

func (s *evaluationSteps) evaluateNone(age int) error {
	return s.post(age, []string{})
}

func (s *evaluationSteps) post(age int, ids []string) error {
	return s.tc.POST("/evaluate", map[string]interface{}{
		"child_age_months":     age,
		"completed_milestones": ids,
	})
}

func (s *evaluationSteps) resultShouldBe(want string) error {
	v, err := s.tc.GetResponseField("result")
	if err != nil {
		return err
	}
	if v != want {
		return fmt.Errorf("expected result %q, got %v", want, v)
	}
	return nil
}

func (s *evaluationSteps) rateShouldBe(want float64) error {
	v, err := s.tc.GetResponseField("completion_rate")
	if err != nil {
		return err
	}
	if got, ok := v.(float64); !ok || got != want {
		return fmt.Errorf("expected completion rate %v, got %v", want, v)
	}
	return nil
}

func (s *evaluationSteps) shouldBeRedFlag(id string) error {
	v, err := s.tc.GetResponseField("red_flags")
	if err != nil {
		return err
	}
	flags, _ := v.([]interface{})
	for _, f := range flags {
		if m, ok := f.(map[string]interface{}); ok && m["milestone_id"] == id {
			return nil
		}
	}
	return fmt.Errorf("%s not among red flags %v", id, v)
}

func (s *evaluationSteps) atMostRecommendations(n int) error {
	v, err := s.tc.GetResponseField("recommendations")
	if err != nil {
		return err
	}
	recs, _ := v.([]interface{})
	if len(recs) > n {
		return fmt.Errorf("expected at most %d recommendations, got %d", n, len(recs))
	}
	return nil
}
