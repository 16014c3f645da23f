package scenario

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
)

// ParamsFromJSON reads a scenario parameter record from a JSON file. Absent
// keys keep their zero values; callers overriding a default scenario should
// supply the full record.
func ParamsFromJSON(file string) (Params, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Params{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Params{}, err
	}

	var params Params
	if err := mapstructure.Decode(inputJson, &params); err != nil {
		return Params{}, err
	}
	return params, nil
}
