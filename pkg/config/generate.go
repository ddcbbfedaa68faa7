package config

import (
	"strings"
)

// DefaultsContent returns the embedded defaults verbatim
func DefaultsContent() string {
	return string(defaultConfig)
}

// GenerateConfigContent returns the defaults with every value commented
// out, as a starting point for a user or project config file
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues comments out every line that is not blank, a
// comment or a section header. Continuation lines of multi-line arrays are
// commented too.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.Contains(trimmed, "=") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
