package abtest

import (
	"bufio"
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mrz1836/taskrouter/internal/domain"
	trerrors "github.com/mrz1836/taskrouter/internal/errors"
	"github.com/mrz1836/taskrouter/internal/logging"
)

// Report tuning.
const (
	// MaxDisagreements is how many rules/ML disagreements a report lists.
	MaxDisagreements = 10

	// DisagreementTaskRunes is how much task text a disagreement shows.
	DisagreementTaskRunes = 60

	maxLineBytes = 1 << 20

	recommendMinMLRecords    = 20
	recommendMinMLConfidence = 0.7
	recommendMinDirectRate   = 0.3
	recommendHighAgreement   = 0.9
	recommendLowAgreement    = 0.5
	recommendSomeCalls       = 10
	recommendManyCalls       = 20
)

// DateLayout is the --since format.
const DateLayout = "2006-01-02"

// LoadRecords reads the JSONL log at path. Blank and malformed lines are
// skipped and counted. When since is not empty, records stamped before that
// date are dropped; since must be YYYY-MM-DD.
func LoadRecords(path, since string) ([]domain.ABRecord, int, error) {
	if since != "" {
		if _, err := time.Parse(DateLayout, since); err != nil {
			return nil, 0, trerrors.Wrapf(trerrors.ErrInvalidDate, "%q", since)
		}
	}

	//nolint:gosec // Path comes from configuration
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, trerrors.Wrapf(trerrors.ErrLogNotFound, "%s", path)
		}
		return nil, 0, trerrors.Wrap(err, "open ab log")
	}
	defer func() { _ = f.Close() }()

	var (
		records []domain.ABRecord
		skipped int
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec domain.ABRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			skipped++
			continue
		}
		// RFC 3339 timestamps sort lexically, so a date prefix compares correctly.
		if since != "" && rec.Timestamp < since {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, trerrors.Wrap(err, "read ab log")
	}
	return records, skipped, nil
}

// Count is one entry of a frequency table.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Disagreement is a record where ML and rules picked different levels.
type Disagreement struct {
	Task            string  `json:"task"`
	RulesLevel      string  `json:"rulesLevel"`
	MLLevel         string  `json:"mlLevel"`
	FinalLevel      string  `json:"finalLevel"`
	MLConfidence    float64 `json:"mlConfidence"`
	RulesConfidence float64 `json:"rulesConfidence"`
}

// ConfidenceStats summarizes a set of confidences. Zero values are ignored.
type ConfidenceStats struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Report is the summary of an A/B log.
type Report struct {
	TotalRecords int    `json:"totalRecords"`
	UniqueTasks  int    `json:"uniqueTasks"`
	From         string `json:"from,omitempty"`
	To           string `json:"to,omitempty"`

	Groups      []Count `json:"groups"`
	Methods     []Count `json:"methods"`
	FinalLevels []Count `json:"finalLevels"`
	RulesLevels []Count `json:"rulesLevels"`

	MLCalls       int            `json:"mlCalls"`
	MLMethods     []Count        `json:"mlMethods"`
	MLDirectRate  float64        `json:"mlDirectRate"`
	MLFallbacks   int            `json:"mlFallbacks"`
	Agreement     float64        `json:"agreement"`
	Disagreements []Disagreement `json:"disagreements"`

	RulesConfidence ConfidenceStats `json:"rulesConfidence"`
	MLConfidence    ConfidenceStats `json:"mlConfidence"`

	Recommendations []string `json:"recommendations"`
}

// Empty reports whether there was nothing to analyze.
func (r *Report) Empty() bool {
	return r.TotalRecords == 0
}

// Analyze summarizes records. Rates and confidences are rounded to three decimals.
func Analyze(records []domain.ABRecord) Report {
	r := Report{TotalRecords: len(records)}
	if len(records) == 0 {
		r.Recommendations = recommendations(0, 0, 0, 0)
		return r
	}

	groups := map[string]int{}
	methods := map[string]int{}
	finals := map[string]int{}
	rulesLevels := map[string]int{}
	mlMethods := map[string]int{}
	tasks := map[string]struct{}{}
	days := map[string]struct{}{}

	var (
		rulesConf, mlConf []float64
		agree, direct     int
	)

	for _, rec := range records {
		groups[string(rec.ABGroup)]++
		methods[string(rec.ClassificationMethod)]++
		finals[string(rec.FinalLevel)]++
		rulesLevels[string(rec.RulesLevel)]++
		tasks[rec.Task] = struct{}{}
		if len(rec.Timestamp) >= len(DateLayout) {
			days[rec.Timestamp[:len(DateLayout)]] = struct{}{}
		}
		if rec.RulesConfidence != 0 {
			rulesConf = append(rulesConf, rec.RulesConfidence)
		}

		if rec.MLLevel == nil {
			continue
		}
		r.MLCalls++

		method := deref(rec.MLMethod)
		mlMethods[method]++
		switch {
		case method == string(domain.MethodML):
			direct++
		case strings.HasPrefix(method, "fallback"):
			r.MLFallbacks++
		}

		mlc := derefFloat(rec.MLConfidence)
		if mlc != 0 {
			mlConf = append(mlConf, mlc)
		}

		if *rec.MLLevel == string(rec.RulesLevel) {
			agree++
		} else if len(r.Disagreements) < MaxDisagreements {
			r.Disagreements = append(r.Disagreements, Disagreement{
				Task:            logging.TruncateRunes(rec.Task, DisagreementTaskRunes),
				RulesLevel:      string(rec.RulesLevel),
				MLLevel:         *rec.MLLevel,
				FinalLevel:      string(rec.FinalLevel),
				MLConfidence:    mlc,
				RulesConfidence: rec.RulesConfidence,
			})
		}
	}

	r.UniqueTasks = len(tasks)
	if len(days) > 0 {
		sorted := sortedKeys(days)
		r.From, r.To = sorted[0], sorted[len(sorted)-1]
	}
	r.Groups = sortedCounts(groups)
	r.Methods = sortedCounts(methods)
	r.FinalLevels = sortedCounts(finals)
	r.RulesLevels = sortedCounts(rulesLevels)
	r.MLMethods = sortedCounts(mlMethods)

	if r.MLCalls > 0 {
		r.MLDirectRate = round3(float64(direct) / float64(r.MLCalls))
		r.Agreement = round3(float64(agree) / float64(r.MLCalls))
	}
	r.RulesConfidence = stats(rulesConf)
	r.MLConfidence = stats(mlConf)
	r.Recommendations = recommendations(r.MLCalls, r.MLConfidence.Avg, r.MLDirectRate, r.Agreement)

	return r
}

func recommendations(mlCalls int, avgMLConf, directRate, agreement float64) []string {
	var recs []string

	if mlCalls < recommendMinMLRecords {
		recs = append(recs, fmt.Sprintf(
			"Only %d ML records so far. Raise abtest.ratio or wait for more tasks.", mlCalls))
	}
	if avgMLConf < recommendMinMLConfidence && mlCalls > 0 {
		recs = append(recs, fmt.Sprintf(
			"Average ML confidence (%.1f%%) is below 70%%. The model needs more training data or tuning.", avgMLConf*100))
	}
	if directRate < recommendMinDirectRate && mlCalls > recommendSomeCalls {
		recs = append(recs, fmt.Sprintf(
			"ML answered directly in only %.0f%% of calls; most decisions fell back to rules.", directRate*100))
	}
	switch {
	case agreement > recommendHighAgreement && mlCalls > recommendManyCalls:
		recs = append(recs, fmt.Sprintf(
			"ML agrees with rules in %.0f%% of calls. abtest.ratio can be raised to 0.7-0.8.", agreement*100))
	case agreement < recommendLowAgreement && mlCalls > recommendSomeCalls:
		recs = append(recs, fmt.Sprintf(
			"Low ML/rules agreement (%.0f%%). Check the training data.", agreement*100))
	}

	if len(recs) == 0 {
		recs = append(recs, "The router is stable. Keep collecting data.")
	}
	return recs
}

func stats(values []float64) ConfidenceStats {
	if len(values) == 0 {
		return ConfidenceStats{}
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return ConfidenceStats{
		Count: len(values),
		Avg:   round3(sum / float64(len(values))),
		Min:   round3(slices.Min(values)),
		Max:   round3(slices.Max(values)),
	}
}

// sortedCounts orders by count descending, then key ascending.
func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
