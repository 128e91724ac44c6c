// Package admin holds the step definitions for the authenticated admin surface.
package admin

import (
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"

	"covidboard/e2e/steps/common"
)

// RegisterSteps wires the admin auth steps. Tokens are minted locally with the
// same signing key the service under test is configured with.
func RegisterSteps(ctx *godog.ScenarioContext, tc *common.TestContext) {
	ctx.Step(`^I have a token with scope "([^"]*)"$`, func(scope string) error {
		token, err := mintToken(tc.SigningKey, scope)
		if err != nil {
			return err
		}
		tc.AuthToken = token
		return nil
	})

	ctx.Step(`^I have no token$`, func() error {
		tc.AuthToken = ""
		return nil
	})
}

func mintToken(signingKey, scope string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   "e2e@covidboard.test",
		"scope": scope,
		"iss":   "covidboard",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
