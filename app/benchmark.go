package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"venturelens/domain/benchmark"
	"venturelens/domain/startup"
	"venturelens/internal"
	"venturelens/internal/errors"
	"venturelens/ports"
)

// BenchmarkStage compares the startup against sector benchmarks.
type BenchmarkStage struct {
	model  ports.ModelClient
	log    ports.BenchmarkLog
	logger *internal.Logger
}

func NewBenchmarkStage(model ports.ModelClient, log ports.BenchmarkLog, logger *internal.Logger) *BenchmarkStage {
	return &BenchmarkStage{
		model:  model,
		log:    log,
		logger: logger.WithComponent("benchmark"),
	}
}

func (s *BenchmarkStage) Available() bool {
	return s.model.Available()
}

// requiredComparisonKeys are the per-entry keys a comparison must carry.
var requiredComparisonKeys = []string{"metric", "startup_value", "sector_avg", "percentile", "insight"}

// defaultPercentile replaces a percentile that is absent or not a number.
const defaultPercentile = 50

// Analyze benchmarks the startup. An empty comparison list fails the
// stage; individually broken values are repaired in place.
func (s *BenchmarkStage) Analyze(ctx context.Context, rec *startup.Record) (*benchmark.Report, error) {
	if !s.model.Available() {
		return nil, errors.StageUnavailable("benchmark")
	}

	raw, err := s.model.Generate(ctx, ports.ModelRequest{Prompt: buildBenchmarkPrompt(rec)})
	if err != nil {
		return nil, errors.Wrap(err, "benchmark model call failed")
	}

	var payload map[string]any
	if err := decodeModelJSON(raw, &payload); err != nil {
		return nil, err
	}

	for _, key := range []string{"industry", "comparisons", "overall_position", "summary"} {
		if _, ok := payload[key]; !ok {
			return nil, errors.New(errors.CodeSchemaValidation,
				fmt.Sprintf("benchmark response is missing %q", key))
		}
	}

	rawComparisons, ok := payload["comparisons"].([]any)
	if !ok || len(rawComparisons) == 0 {
		return nil, errors.New(errors.CodeSchemaValidation, "benchmark response has no comparisons")
	}

	comparisons := make([]benchmark.MetricComparison, 0, len(rawComparisons))
	for i, rc := range rawComparisons {
		entry, ok := rc.(map[string]any)
		if !ok {
			return nil, errors.New(errors.CodeSchemaValidation,
				fmt.Sprintf("benchmark comparison %d is not an object", i))
		}
		for _, key := range requiredComparisonKeys {
			if _, ok := entry[key]; !ok {
				return nil, errors.New(errors.CodeSchemaValidation,
					fmt.Sprintf("benchmark comparison %d is missing %q", i, key))
			}
		}

		cmp := benchmark.MetricComparison{
			Metric:       stringValue(entry["metric"]),
			StartupValue: stringValue(entry["startup_value"]),
			SectorAvg:    stringValue(entry["sector_avg"]),
			Insight:      stringValue(entry["insight"]),
			Percentile:   s.percentile(entry["percentile"]),
		}
		if n, ok := benchmark.ParseNumeric(entry["startup_value"]); ok {
			cmp.StartupValueNum = &n
		}
		if n, ok := benchmark.ParseNumeric(entry["sector_avg"]); ok {
			cmp.SectorAvgNum = &n
		}
		comparisons = append(comparisons, cmp)
	}

	position, ok := benchmark.ParsePosition(stringValue(payload["overall_position"]))
	if !ok {
		s.logger.Warn("unrecognized overall position %q, defaulting to %s",
			stringValue(payload["overall_position"]), benchmark.PositionAverage)
	}

	industry := strings.TrimSpace(stringValue(payload["industry"]))
	if industry == "" {
		industry = rec.SectorOrDefault()
	}

	rep := &benchmark.Report{
		Industry:        industry,
		Comparisons:     comparisons,
		OverallPosition: position,
		Summary:         stringValue(payload["summary"]),
		AnalyzedAt:      time.Now().UTC().Format(time.RFC3339),
		Model:           s.model.Model(),
	}

	s.record(ctx, rec.DisplayName(), rep)
	return rep, nil
}

// percentile extracts an int percentile, clamping to [0,100] and
// falling back to the midpoint for non-numeric values.
func (s *BenchmarkStage) percentile(v any) int {
	n, ok := benchmark.ParseNumeric(v)
	if !ok {
		s.logger.Warn("non-numeric percentile %v, defaulting to %d", v, defaultPercentile)
		return defaultPercentile
	}
	clamped, changed := benchmark.ClampPercentile(int(n))
	if changed {
		s.logger.Warn("percentile %.0f outside [0,100], clamped to %d", n, clamped)
	}
	return clamped
}

func (s *BenchmarkStage) record(ctx context.Context, name string, rep *benchmark.Report) {
	if s.log == nil {
		return
	}
	if err := s.log.RecordBenchmark(ctx, name, rep); err != nil {
		s.logger.Warn("failed to record benchmark for %s: %v", name, err)
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
