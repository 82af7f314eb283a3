package classifier

// IsProgramTask reports whether a deterministic tool can handle text.
func IsProgramTask(text string) bool {
	return anyMatch(programPatterns, normalize(text))
}

// SuggestProgram returns a shell command that likely answers a program-level
// task, or "" when nothing fits. The suggestion is a hint only.
func SuggestProgram(text string) string {
	return suggestProgram(normalize(text))
}

func suggestProgram(text string) string {
	for _, s := range programSuggestions {
		if s.re.MatchString(text) {
			return s.command
		}
	}
	return ""
}
