package scan

import (
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ParseIssues extracts findings from a model response. The documented
// response shape is {"issues": [{"severity", "description", "line"}, ...]}.
// Malformed output degrades to zero findings, never to an error: invalid
// JSON is logged and skipped, a missing "issues" key counts as empty, and
// severity/line values are passed through without validation.
func ParseIssues(logger *zap.SugaredLogger, response, path string) []Finding {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	content := stripFences(response)
	if !gjson.Valid(content) {
		logger.Errorw("failed to parse model response", "path", path)
		return nil
	}

	issues := gjson.Get(content, "issues")
	if !issues.Exists() || !issues.IsArray() {
		return nil
	}

	var findings []Finding
	issues.ForEach(func(_, item gjson.Result) bool {
		f := Finding{
			Severity:    Severity(item.Get("severity").String()),
			Description: item.Get("description").String(),
		}
		if line := item.Get("line"); line.Exists() && line.Type == gjson.Number {
			n := int(line.Int())
			f.Line = &n
		}
		findings = append(findings, f)
		return true
	})

	if len(findings) == 0 {
		logger.Infow("no significant vulnerabilities detected", "path", path)
	}
	return findings
}

// stripFences removes a surrounding markdown code fence, which models emit
// despite instructions not to.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}
