package promtext

import "fmt"

// MetricType identifies the metric type written in # TYPE comment lines.
// The zero value is Gauge, so options structs default sensibly.
type MetricType int

const (
	Gauge MetricType = iota
	Counter
	Histogram
	Summary
)

// metricTypeNames holds the closed set of exposition type tags, indexed by
// MetricType value.
var metricTypeNames = [...]string{"gauge", "counter", "histogram", "summary"}

// String returns the exposition type tag for t.
func (t MetricType) String() string {
	if !t.valid() {
		return fmt.Sprintf("MetricType(%d)", int(t))
	}
	return metricTypeNames[t]
}

func (t MetricType) valid() bool {
	return t >= Gauge && t <= Summary
}

// ValidMetricTypes returns the canonical list of accepted type tags.
func ValidMetricTypes() []string {
	return append([]string(nil), metricTypeNames[:]...)
}

// ParseMetricType converts an exposition type tag into a MetricType. Anything
// outside the closed enumeration fails with InvalidMetricTypeError; external
// text must pass through here before reaching Define.
func ParseMetricType(s string) (MetricType, error) {
	for i, name := range metricTypeNames {
		if s == name {
			return MetricType(i), nil
		}
	}
	return 0, &InvalidMetricTypeError{Value: s, Valid: ValidMetricTypes()}
}
