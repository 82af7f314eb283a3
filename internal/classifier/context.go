package classifier

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mrz1836/taskrouter/internal/constants"
)

// normalize prepares text for matching. Decomposed letters such as "й" typed
// as "и" plus a combining breve are folded into their composed form.
func normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// EstimateContextSize guesses how many tokens of context a task will need.
//
// Explicit file counts win, then counts of other items multiplied by a
// per-task-kind cost, then "whole project" language. The result is always
// within [constants.MinContextSize, constants.MaxContextSize].
func EstimateContextSize(text string) int {
	return estimateContextSize(normalize(text))
}

func estimateContextSize(text string) int {
	if tokens, ok := fileCountTokens(text); ok {
		return clampContext(tokens)
	}
	for _, w := range fileWordPatterns {
		if w.re.MatchString(text) {
			return clampContext(w.tokens)
		}
	}
	if tokens, ok := itemCountTokens(text); ok {
		return clampContext(tokens)
	}
	if anyMatch(allEverywherePatterns, text) {
		return clampContext(AllEverywhereTokens)
	}
	return constants.MinContextSize
}

// fileCountTokens returns the bucket for the largest file count mentioned.
// "N+" reads as "more than N", so "10+" lands above a plain "10".
func fileCountTokens(text string) (int, bool) {
	matches := fileCountPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}

	largest := 0
	for _, m := range matches {
		n := atoi(m[1])
		if m[2] != "" {
			if hi := atoi(m[2]); hi > n {
				n = hi
			}
		}
		if m[3] != "" {
			n++
		}
		if n > largest {
			largest = n
		}
	}
	return fileBucketTokens(largest), true
}

func fileBucketTokens(files int) int {
	for _, b := range fileBuckets {
		if files <= b.maxFiles {
			return b.tokens
		}
	}
	return LargestFileBucket
}

// itemCountTokens multiplies the largest item count by the per-item cost of the task kind.
func itemCountTokens(text string) (int, bool) {
	matches := itemCountPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}

	count := 0
	for _, m := range matches {
		if n := atoi(m[1]); n > count {
			count = n
		}
	}
	if count == 0 {
		return 0, false
	}
	return count * perItemTokens(text), true
}

func perItemTokens(text string) int {
	for _, m := range taskMultipliers {
		if m.re.MatchString(text) {
			return m.perItem
		}
	}
	return DefaultPerItemTokens
}

func clampContext(tokens int) int {
	return min(max(tokens, constants.MinContextSize), constants.MaxContextSize)
}

// atoi parses a digit run already validated by the regex. The regex caps it
// at six digits, so overflow cannot happen.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
