// Package classifier implements the rule-based task complexity classifier.
//
// A task description is matched against fixed tables of Cyrillic and English
// keyword patterns to pick a complexity level, estimate how many tokens of
// context the task will need, and derive a criticality signal. The classifier
// then asks the pipeline package for a pipeline and cost estimate so that each
// result is complete on its own.
//
// Everything here is deterministic: the same text always produces the same
// result, and no function in this package returns an error.
//
// Input is normalized to NFC before matching. Go's regexp \b only knows ASCII
// word characters, so patterns that need a word edge next to Cyrillic letters
// use the wordStart/wordEnd fragments instead.
package classifier
