package e2e

import (
	"github.com/cucumber/godog"

	"nurture/e2e/steps/chat"
	"nurture/e2e/steps/common"
	"nurture/e2e/steps/evaluation"
	"nurture/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	evaluation.RegisterSteps(ctx, tc)
	chat.RegisterSteps(ctx, tc)
	ratelimit.RegisterSteps(ctx, tc)
}
