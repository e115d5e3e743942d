package redact

import "regexp"

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for credential-looking strings that
// must not leave the machine inside an analysis chunk. They run against raw
// source text, so hardcoded assignments are the main target; the model is
// still told about the finding site because only the value is replaced.
var secretPatterns = []*regexp.Regexp{
	// Key/secret/token/password assignments
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Bearer tokens in headers or literals
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// OpenAI-style API keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// Long hex strings in key-ish assignments
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Secrets replaces detected secrets in content with [REDACTED].
func Secrets(content string) string {
	result := content
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}
