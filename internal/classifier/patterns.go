package classifier

import (
	"regexp"
)

// Word edges that also work next to Cyrillic letters.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

// mustCompileAll compiles every expression case-insensitively.
// It panics on a bad pattern, which can only happen at package init.
func mustCompileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// countMatches returns how many of the patterns match text. Each pattern counts once.
func countMatches(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Tasks a deterministic tool can answer without a model.
// Bare "проверь" is deliberately absent: "проверь безопасность" is review work.
//
//nolint:gochecknoglobals // Compiled once, read-only
var programPatterns = mustCompileAll(
	`(?:запуст|прогон)\p{L}*\s+(?:все\s+)?(?:тест|линт|lint|бенчмарк)`,
	`тест\p{L}*\s+запуст`,
	`run\s+(?:all\s+|the\s+)?(?:tests?|linters?|benchmarks?)`,
	wordStart+`(?:pytest|eslint|prettier|flake8|mypy|gofmt|golangci-lint)`+wordEnd,
	wordStart+`(?:lint|linter|линт|линтер)`+wordEnd,
	wordStart+`format`+wordEnd,
	`black\s+\.`,
	`отформатиру`,
	`покажи\s+(?:мне\s+)?(?:отч[её]т|статистик|список|расход|просмотр)`,
	`show\s+(?:me\s+)?(?:the\s+)?(?:report|stats|statistics|usage|list)`,
	`сколько\s+(?:токенов|потрачено|стоил)`,
	`how\s+many\s+tokens|token\s+usage`,
	`git\s+(?:status|log|diff)`,
	`размер\s+проекта|project\s+size`,
	`дерев\p{L}*\s+(?:директорий|каталогов|проекта|файлов)|directory\s+tree`,
	`(?:валидац|провер)\p{L}*\s+json|validate\s+json|json\s+(?:валид|validat)`,
	`посчита\p{L}*\s+строк|count\s+lines`,
)

// One-line edits.
//
//nolint:gochecknoglobals // Compiled once, read-only
var trivialPatterns = mustCompileAll(
	`опечатк|typo`,
	`измени\p{L}*\s+(?:текст|надпис|строку\s+текста)|change\s+(?:the\s+)?text`,
	`переименова\p{L}*\s+(?:переменн|функци)|rename\s+(?:the\s+)?(?:variable|function)`,
	`обнови\p{L}*\s+readme|update\s+(?:the\s+)?readme`,
	`добав\p{L}*\s+комментари\p{L}*\s+(?:к|в)\s+(?:функци|строк|метод)`,
	`одн[ау]\s+строк|one[\s-]line`,
)

// System-wide redesigns. Each match scores WeightVeryComplex.
//
//nolint:gochecknoglobals // Compiled once, read-only
var veryComplexPatterns = mustCompileAll(
	`архитектур\p{L}*\s+(?:всего|всей|всех|весь)|(?:entire|whole)\s+(?:system\s+)?architecture|architecture\s+of\s+the\s+(?:entire|whole)`,
	`микросервис|microservice`,
	`переписать\s+(?:вс\p{L}*|с\s+нуля)|rewrite\s+(?:the\s+)?(?:entire|whole|everything)|from\s+scratch`,
	`distributed|распредел[её]нн`,
	`multi-?tenant|мультитенант|многомодульн`,
	`cqrs|event[\s-]driven|event\s+sourcing`,
	`миграц\p{L}*\s+(?:всего|всей|всех)|migrat\p{L}*\s+(?:the\s+)?(?:entire|whole)`,
)

// Architecture, security, migrations and performance. Each match scores WeightComplex.
//
//nolint:gochecknoglobals // Compiled once, read-only
var complexPatterns = mustCompileAll(
	`архитектур|architect`,
	`безопасн|security`,
	`рефактор|refactor`,
	`миграц|migrat`,
	`производительн|performance`,
	`оптимизац|optimi[sz]`,
	`авторизац|аутентификац|authentication|authorization`,
	`шифрован|encrypt`,
	`аудит|audit`,
	`database\s+schema|схем\p{L}*\s+(?:базы|бд)`,
	`переписать|rewrite`,
)

// Feature-sized work. Each match scores WeightMedium.
//
//nolint:gochecknoglobals // Compiled once, read-only
var mediumPatterns = mustCompileAll(
	wordStart+`api`+wordEnd+`|endpoint|эндпоинт`,
	`модул|module`,
	`компонент|component`,
	`фич|feature`,
	`интеграц|integrat`,
	`middleware`,
	wordStart+`crud`+wordEnd,
	`webhook|вебхук`,
	`кеширован|кэширован|cach`,
	`redis`,
	wordStart+`(?:jwt|oauth)`,
	`валидац|validat`,
	`тест|test`,
	`баз\p{L}*\s+данных|database`,
)

// Same mechanical edit repeated across many files.
//
//nolint:gochecknoglobals // Compiled once, read-only
var repetitivePatterns = mustCompileAll(
	`во\s+вс[еёя]|across\s+all|в\s+кажд|every\s+(?:file|module|function|component)|везде|everywhere`,
	`добав\p{L}*\s+(?:логирован|type\s+hints|тип\p{L}*\s+аннотац|docstring|комментари)`,
	`add\s+(?:logging|type\s+hints|docstrings?|comments)`,
	`(?:replace|rename)\s+.+\s+(?:everywhere|in\s+all)`,
	`(?:замен|переименова)\p{L}*\s+.+\s+(?:везде|во\s+вс)`,
	`массов\p{L}*\s+(?:правк|замен|изменен)|bulk`,
)

// Criticality tables, checked critical first.
//
//nolint:gochecknoglobals // Compiled once, read-only
var (
	criticalPatterns = mustCompileAll(
		`production|продакшн|продакшен|прод\s+(?:сервер|баз)`,
		`утечк|data\s+leak`,
		`payment|платеж|платёж|billing|биллинг`,
		`user\s+data|данны[хе]\s+пользовател|персональн\p{L}*\s+данн|`+wordStart+`pii`+wordEnd,
		`critical\s+vuln|критическ\p{L}*\s+уязвим`,
	)
	highPatterns = mustCompileAll(
		`безопасн|security`,
		wordStart+`auth`,
		`авторизац|аутентификац`,
		`шифрован|encrypt`,
		`уязвим|vulnerab`,
		`парол|password|secret|секрет`,
	)
	mediumCriticalityPatterns = mustCompileAll(
		`рефактор|refactor`,
		`миграц|migrat`,
		wordStart+`api`+wordEnd,
		`database|баз\p{L}*\s+данных`,
	)
)

// fileCountPattern captures "N файлов", "N-M files" and "N+ файлов".
//
//nolint:gochecknoglobals // Compiled once, read-only
var fileCountPattern = regexp.MustCompile(
	`(?i)(?:^|[^\d])(\d{1,6})(?:\s*[-–]\s*(\d{1,6}))?\s*(\+)?\s*(?:файл|files?` + wordEnd + `)`,
)

// contextBucket maps an upper file count to a context size in tokens.
type contextBucket struct {
	maxFiles int
	tokens   int
}

// fileBuckets is ordered by maxFiles; counts above the last bucket use LargestFileBucket.
//
//nolint:gochecknoglobals // Read-only table
var fileBuckets = []contextBucket{
	{maxFiles: 1, tokens: 10000},
	{maxFiles: 2, tokens: 25000},
	{maxFiles: 5, tokens: 60000},
	{maxFiles: 10, tokens: 150000},
	{maxFiles: 19, tokens: 300000},
}

// LargestFileBucket is the context size for twenty or more files.
const LargestFileBucket = 600000

// fileWordPattern is a file count written as words.
type fileWordPattern struct {
	re     *regexp.Regexp
	tokens int
}

//nolint:gochecknoglobals // Compiled once, read-only
var fileWordPatterns = []fileWordPattern{
	{regexp.MustCompile(`(?i)(?:один|одном|одного)\s+файл|single\s+file|one\s+file`), 10000},
	{regexp.MustCompile(`(?i)(?:два|двух|пару|пара)\s+файл|two\s+files|couple\s+of\s+files`), 25000},
	{regexp.MustCompile(`(?i)(?:три|трёх|трех|несколько|нескольких)\s+файл|(?:three|several|a\s+few)\s+files`), 60000},
	{regexp.MustCompile(`(?i)(?:много|множество)\s+файл|many\s+files`), 150000},
}

// itemCountPattern captures "N <things>" for units other than files.
//
//nolint:gochecknoglobals // Compiled once, read-only
var itemCountPattern = regexp.MustCompile(
	`(?i)(?:^|[^\d])(\d{1,6})\s*(?:items?|компонент|components?|модул|modules?|страниц|pages?|endpoints?|эндпоинт|таблиц|tables?|сервис|services?|функци|functions?|класс|classes)`,
)

// taskMultiplier is the per-item token cost for a kind of task.
type taskMultiplier struct {
	re      *regexp.Regexp
	perItem int
}

// DefaultPerItemTokens is used when no task kind matches.
const DefaultPerItemTokens = 8000

// taskMultipliers is checked in order; the first match wins.
//
//nolint:gochecknoglobals // Compiled once, read-only
var taskMultipliers = []taskMultiplier{
	{regexp.MustCompile(`(?i)миграц|migrat`), 25000},
	{regexp.MustCompile(`(?i)рефактор|refactor`), 15000},
	{regexp.MustCompile(`(?i)логирован|logging|docstring|комментари|comments|type\s+hints`), 3000},
}

// AllEverywhereTokens is the context size for "whole project" language.
const AllEverywhereTokens = 200000

//nolint:gochecknoglobals // Compiled once, read-only
var allEverywherePatterns = mustCompileAll(
	`во\s+вс[еёя]`,
	`вс[её]\s+(?:файл|модул|компонент|сервис|страниц|эндпоинт)`,
	`весь\s+(?:проект|код|репозитори)|всего\s+проекта|всей\s+кодов`,
	`везде|в\s+кажд`,
	`all\s+(?:the\s+)?(?:files|modules|components|services|pages|endpoints)`,
	`across\s+all|everywhere|entire\s+(?:project|codebase|repo)|whole\s+(?:project|codebase|repo)`,
	`every\s+(?:file|module|component|service)`,
)

// programSuggestion maps a keyword to the command that answers the task.
type programSuggestion struct {
	re      *regexp.Regexp
	command string
}

// programSuggestions is checked in order; more specific tools come first.
//
//nolint:gochecknoglobals // Compiled once, read-only
var programSuggestions = []programSuggestion{
	{regexp.MustCompile(`(?i)git\s+status`), "git status"},
	{regexp.MustCompile(`(?i)git\s+log`), "git log --oneline -20"},
	{regexp.MustCompile(`(?i)git\s+diff`), "git diff --stat"},
	{regexp.MustCompile(`(?i)eslint`), "npx eslint ."},
	{regexp.MustCompile(`(?i)prettier`), "npx prettier --write ."},
	{regexp.MustCompile(`(?i)black|format|форматир`), "black ."},
	{regexp.MustCompile(`(?i)mypy`), "mypy ."},
	{regexp.MustCompile(`(?i)gofmt`), "gofmt -l ."},
	{regexp.MustCompile(`(?i)golangci-lint`), "golangci-lint run"},
	{regexp.MustCompile(`(?i)flake8|lint|линт`), "flake8 ."},
	{regexp.MustCompile(`(?i)pytest|тест|test`), "pytest -q"},
	{regexp.MustCompile(`(?i)бенчмарк|benchmark`), "pytest --benchmark-only"},
	{regexp.MustCompile(`(?i)токен|token|расход|потрачено|стоил|usage`), "python3 scripts/cost_tracker.py"},
	{regexp.MustCompile(`(?i)отч[её]т|статистик|report|stats|statistics`), "taskrouter ab report"},
	{regexp.MustCompile(`(?i)дерев|tree`), "tree -L 2"},
	{regexp.MustCompile(`(?i)размер|size`), "du -sh ."},
	{regexp.MustCompile(`(?i)json`), "python3 -m json.tool"},
	{regexp.MustCompile(`(?i)строк|lines`), "wc -l"},
}
