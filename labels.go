package promtext

import (
	"fmt"
	"strings"
)

// Label is one key/value annotation on a sample. A nil Value is the
// absent-value sentinel: the label is dropped from the rendered block. Zero
// and empty-string values are real values and always render.
type Label struct {
	Key   string
	Value any
}

// LabelSet is an ordered list of labels. Rendering preserves insertion order
// and never sorts.
type LabelSet []Label

// quoteEscaper escapes double quotes in label values. Backslashes and
// newlines intentionally pass through unchanged; consumers depend on this
// exact narrow policy.
var quoteEscaper = strings.NewReplacer(`"`, `\"`)

// render returns the `{k1="v1",k2="v2"}` block, or the empty string when
// every label was filtered out.
func (ls LabelSet) render() string {
	var b strings.Builder
	wrote := false
	for _, l := range ls {
		if l.Value == nil {
			continue
		}
		if wrote {
			b.WriteByte(',')
		} else {
			b.WriteByte('{')
		}
		b.WriteString(l.Key)
		b.WriteString(`="`)
		b.WriteString(quoteEscaper.Replace(fmt.Sprint(l.Value)))
		b.WriteByte('"')
		wrote = true
	}
	if wrote {
		b.WriteByte('}')
	}
	return b.String()
}
