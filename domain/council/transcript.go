package council

import (
	"fmt"
	"strings"

	"gocouncil/domain/core"
)

// RenderTranscript flattens the discovery chat into the context string fed to
// persona evaluations, one "sender: content" line per message.
func RenderTranscript(messages []Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Content))
	}
	return strings.Join(lines, "\n")
}

// RenderPerspectives flattens persona results into the debate summary fed to
// synthesis, one "principle: content" entry joined by blank lines.
func RenderPerspectives(results []PersonaResult) string {
	entries := make([]string, 0, len(results))
	for _, r := range results {
		entries = append(entries, fmt.Sprintf("%s: %s", r.Principle, r.Content))
	}
	return strings.Join(entries, "\n\n")
}

// Persona icon identifiers, assigned cyclically by principle index. Purely a
// presentation hint; the mapping is deterministic.
var personaIcons = []string{"shield", "compass", "scale", "flame", "anchor", "beacon"}

// PersonaIcon maps a principle's position in the focus set to an icon
// identifier
func PersonaIcon(principleIndex int) string {
	if principleIndex < 0 {
		principleIndex = -principleIndex
	}
	return personaIcons[principleIndex%len(personaIcons)]
}

// FindPerspective returns the result for a principle, if present
func FindPerspective(results []PersonaResult, principle core.PrincipleName) (PersonaResult, bool) {
	for _, r := range results {
		if r.Principle == principle {
			return r, true
		}
	}
	return PersonaResult{}, false
}
