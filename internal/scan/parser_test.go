package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestParseIssuesValid(t *testing.T) {
	response := `{"issues":[
		{"severity":"HIGH","description":"SQL injection via string concatenation","line":42},
		{"severity":"LOW","description":"unused variable"}
	]}`

	findings := ParseIssues(testLogger(), response, "app.py")
	require.Len(t, findings, 2)

	assert.Equal(t, SeverityHigh, findings[0].Severity)
	assert.Equal(t, "SQL injection via string concatenation", findings[0].Description)
	require.NotNil(t, findings[0].Line)
	assert.Equal(t, 42, *findings[0].Line)

	assert.Equal(t, SeverityLow, findings[1].Severity)
	assert.Nil(t, findings[1].Line)
}

func TestParseIssuesFencedResponse(t *testing.T) {
	response := "```json\n{\"issues\":[{\"severity\":\"CRITICAL\",\"description\":\"hardcoded credential\",\"line\":3}]}\n```"

	findings := ParseIssues(testLogger(), response, "main.go")
	require.Len(t, findings, 1)
	assert.Equal(t, SeverityCritical, findings[0].Severity)
}

func TestParseIssuesInvalidJSON(t *testing.T) {
	assert.Nil(t, ParseIssues(testLogger(), "SEVERITY: INFO - No significant vulnerabilities detected.", "a.py"))
	assert.Nil(t, ParseIssues(testLogger(), "{not json", "a.py"))
	assert.Nil(t, ParseIssues(testLogger(), "", "a.py"))
}

func TestParseIssuesMissingOrWrongShape(t *testing.T) {
	// Valid JSON without an issues array yields no findings, not an error.
	assert.Nil(t, ParseIssues(testLogger(), `{"findings":[]}`, "a.py"))
	assert.Nil(t, ParseIssues(testLogger(), `{"issues":"none"}`, "a.py"))
	assert.Empty(t, ParseIssues(testLogger(), `{"issues":[]}`, "a.py"))
}

func TestParseIssuesNonNumericLine(t *testing.T) {
	response := `{"issues":[{"severity":"MEDIUM","description":"weak hash","line":"unknown"}]}`

	findings := ParseIssues(testLogger(), response, "a.py")
	require.Len(t, findings, 1)
	assert.Nil(t, findings[0].Line)
}

func TestParseIssuesSeverityPassthrough(t *testing.T) {
	// Severity strings are not validated against the known levels.
	response := `{"issues":[{"severity":"BANANAS","description":"odd"}]}`

	findings := ParseIssues(testLogger(), response, "a.py")
	require.Len(t, findings, 1)
	assert.Equal(t, Severity("BANANAS"), findings[0].Severity)
	assert.Equal(t, 0, SeverityRank(findings[0].Severity))
}
