package scan

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a security code analyzer specialized in static code analysis. Analyze the provided code snippet for vulnerabilities, secrets, and code quality issues. For each issue found, provide:
- Severity level (` + "`CRITICAL`, `HIGH`, `MEDIUM`, `LOW`, `INFO`" + `)
- A brief description of the issue
- The line number where the issue occurs (if available)
If no issues are found, respond with 'SEVERITY: INFO - No significant vulnerabilities detected.'
Provide your response in the following JSON format:
{
  "issues": [
    {
      "severity": "<SEVERITY_LEVEL>",
      "description": "<ISSUE_DESCRIPTION>",
      "line": <LINE_NUMBER>
    },
    ...
  ]
}
Do not include any additional text outside of the JSON format.`

// SystemPrompt returns the fixed analysis instruction, extended with the
// optional audit profile. The chunk itself travels as the user message
// untouched, so profile guidance belongs here.
func SystemPrompt(profile *Profile) string {
	section := profile.PromptSection()
	if section == "" {
		return systemPrompt
	}
	return systemPrompt + "\n" + section
}

// Profile is an optional audit profile loaded from --profile. It steers
// the analysis toward specific concerns without changing the response
// contract.
type Profile struct {
	Focus        []string `yaml:"focus,omitempty"`
	Instructions []string `yaml:"instructions,omitempty"`
}

// PromptSection returns the prompt addition derived from the profile.
func (p *Profile) PromptSection() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	if len(p.Focus) > 0 {
		fmt.Fprintf(&b, "\nFocus areas: %s. Prioritize issues in these areas.\n",
			strings.Join(p.Focus, ", "))
	}
	for _, inst := range p.Instructions {
		fmt.Fprintf(&b, "- %s\n", inst)
	}
	return b.String()
}
