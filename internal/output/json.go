package output

import (
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/plrgo/internal/calculation"
)

// JSONFormatter renders indented JSON. Money fields are decimal strings.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) FormatPlr(result *calculation.PlrResult) ([]byte, error) {
	return marshal(result)
}

func (JSONFormatter) FormatDiscovery(result *calculation.DiscoverMultiplierResult) ([]byte, error) {
	return marshal(result)
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
