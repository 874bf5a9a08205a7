package layout

import (
	"encoding/json"

	"github.com/corkboard-io/corkboard/pkg/errors"
)

// MarshalPlan serializes a plan to pretty-printed JSON bytes.
func MarshalPlan(p Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// UnmarshalPlan deserializes a plan from JSON bytes.
func UnmarshalPlan(data []byte) (Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return Plan{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal plan")
	}
	return p, nil
}
