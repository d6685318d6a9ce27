package ratelimit

import (
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	SetClientIP(ip string)
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
	GetResponseField(field string) (interface{}, error)
}

// RegisterSteps registers chat rate-limiting steps. The scenarios assume the
// server runs with its default CHAT_RATE_LIMIT.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}
	ctx.Step(`^I am chatting from IP "([^"]*)"$`, steps.chattingFromIP)
	ctx.Step(`^I send (\d+) chat messages$`, steps.sendMessages)
	ctx.Step(`^the last response should be rate limited$`, steps.lastRateLimited)
	ctx.Step(`^the response should carry rate limit headers$`, steps.hasHeaders)
}

type ratelimitSteps struct {
	tc TestContext
}

func (s *ratelimitSteps) chattingFromIP(ip string) error {
	s.tc.SetClientIP(ip)
	return nil
}

func (s *ratelimitSteps) sendMessages(n int) error {
	for i := 0; i < n; i++ {
		if err := s.tc.POST("/api/chat", map[string]interface{}{"message": "hello"}); err != nil {
			return err
		}
	}
	return nil
}

func (s *ratelimitSteps) lastRateLimited() error {
	if got := s.tc.GetLastResponseStatus(); got != 429 {
		return fmt.Errorf("expected 429, got %d", got)
	}
	if _, err := s.tc.GetResponseField("retry_after"); err != nil {
		return err
	}
	return nil
}

func (s *ratelimitSteps) hasHeaders() error {
	for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if s.tc.GetLastResponseHeader(h) == "" {
			return fmt.Errorf("missing header %s", h)
		}
	}
	return nil
}
