package compare

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// JSONFormatter renders a comparison as a single JSON document followed by a
// newline. Pretty indents it by two spaces.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(set *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(set); err != nil {
		return "", err
	}
	return buf.String(), nil
}
