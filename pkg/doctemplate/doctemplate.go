// Package doctemplate fills consent document templates by replacing
// placeholder tokens with subject-specific values.
package doctemplate

import (
	"fmt"
	"strings"
)

// Known placeholder tokens used by consent templates.
const (
	TokenDate     = "__FECHA__"
	TokenPatient  = "__PACIENTE__"
	TokenDocument = "__DOCUMENTO__"
)

var knownTokens = []string{TokenDate, TokenPatient, TokenDocument}

// Replacement maps a placeholder token to its substituted value.
type Replacement struct {
	Token string
	Value string
}

// Fill substitutes every occurrence of each replacement token in content.
// Replacements are applied in order. After substitution, any known token
// still present in the result is reported as an error so a signed snapshot
// can never carry an unresolved placeholder.
func Fill(content string, replacements []Replacement) (string, error) {
	result := content
	for _, r := range replacements {
		if r.Token == "" {
			return "", fmt.Errorf("replacement token cannot be empty")
		}
		result = strings.ReplaceAll(result, r.Token, r.Value)
	}

	if unresolved := unresolvedTokens(result, replacements); len(unresolved) > 0 {
		return "", fmt.Errorf("unresolved template tokens: %s", strings.Join(unresolved, ", "))
	}

	return result, nil
}

// unresolvedTokens reports tokens left literal in the filled content.
// Checks both the replacement set (a value re-introducing a token is a
// template authoring error, not a silent pass-through) and the known
// token list (a template token missing from the replacement set).
func unresolvedTokens(filled string, replacements []Replacement) []string {
	seen := make(map[string]bool)
	var unresolved []string

	check := func(token string) {
		if !seen[token] && strings.Contains(filled, token) {
			seen[token] = true
			unresolved = append(unresolved, token)
		}
	}

	for _, r := range replacements {
		check(r.Token)
	}
	for _, token := range knownTokens {
		check(token)
	}

	return unresolved
}
