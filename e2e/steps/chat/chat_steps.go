package chat

import (
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GetResponseField(field string) (interface{}, error)
}

// RegisterSteps registers conversational steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &chatSteps{tc: tc}
	ctx.Step(`^I say "([^"]*)"$`, steps.say)
	ctx.Step(`^I say "([^"]*)" about a (\d+) month old$`, steps.sayWithAge)
	ctx.Step(`^the assistant should be in state "([^"]*)"$`, steps.stateShouldBe)
	ctx.Step(`^the reply type should be "([^"]*)"$`, steps.typeShouldBe)
	ctx.Step(`^activities should be suggested$`, steps.activitiesSuggested)
}

type chatSteps struct {
	tc TestContext
}

func (s *chatSteps) say(message string) error {
	return s.tc.POST("/api/chat", map[string]interface{}{"message": message})
}

func (s *chatSteps) sayWithAge(message string, age int) error {
	return s.tc.POST("/api/chat", map[string]interface{}{
		"message":          message,
		"child_age_months": age,
	})
}

func (s *chatSteps) stateShouldBe(want string) error {
	return s.fieldEquals("state", want)
}

func (s *chatSteps) typeShouldBe(want string) error {
	return s.fieldEquals("response_type", want)
}

func (s *chatSteps) activitiesSuggested() error {
	v, err := s.tc.GetResponseField("suggested_activities")
	if err != nil {
		return err
	}
	if acts, _ := v.([]interface{}); len(acts) == 0 {
		return fmt.Errorf("no activities suggested")
	}
	return nil
}

func (s *chatSteps) fieldEquals(field, want string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if v != want {
		return fmt.Errorf("expected %s %q, got %v", field, want, v)
	}
	return nil
}
