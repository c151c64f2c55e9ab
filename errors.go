package promtext

import (
	"fmt"
	"strings"
)

// InvalidMetricTypeError reports a metric type outside the closed
// enumeration. Value carries the offending input, Valid the accepted tags.
type InvalidMetricTypeError struct {
	Value string
	Valid []string
}

func (e *InvalidMetricTypeError) Error() string {
	return fmt.Sprintf("invalid metric type %q (valid types: %s)", e.Value, strings.Join(e.Valid, ", "))
}

// UndefinedMetricError reports a sample operation against a metric name that
// has no stored definition. Define the metric first.
type UndefinedMetricError struct {
	Name string
}

func (e *UndefinedMetricError) Error() string {
	return fmt.Sprintf("metric %q is not defined: call Define before formatting samples", e.Name)
}
