// Package abtest runs the rules classifier alongside the external ML
// classifier, picks the final answer and records both in an append-only JSONL
// log. The same package reads that log back and summarizes it.
//
// IMPORTANT: This package may import internal/ai, internal/classifier,
// internal/clock, internal/config, internal/constants, internal/domain,
// internal/errors and internal/logging. It MUST NOT import internal/cli.
package abtest
