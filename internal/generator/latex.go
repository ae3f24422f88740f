package generator

import "strings"

// latexEscaper runs in a single pass, so replacement text is never itself
// re-escaped. Backslash must map to \textbackslash{} rather than \\, which
// LaTeX reads as a line break.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes LaTeX special characters in user-supplied text.
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}
