package html

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	resultPolicyOnce sync.Once
	resultPolicy     *bluemonday.Policy
)

// resultSanitizer allows only the markup the result templates produce.
func resultSanitizer() *bluemonday.Policy {
	resultPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "p", "h2", "span", "img")

		policy.AllowAttrs("class").Matching(
			regexp.MustCompile(`^(country-card|flag-container|country-info|info-grid|info-label|info-value|badge|error-message|loading)$`),
		).OnElements("div", "span")

		policy.AllowStandardURLs()
		policy.AllowAttrs("src").OnElements("img")
		policy.AllowAttrs("alt").OnElements("img")
		policy.AllowAttrs("loading").Matching(regexp.MustCompile(`^lazy$`)).OnElements("img")

		resultPolicy = policy
	})
	return resultPolicy
}
