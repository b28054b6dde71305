package core

import (
	"encoding/json"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"elliott/internal/types"
)

// RefreshPayload encodes the bug list as a JSON array. An empty list
// encodes as "[]".
func RefreshPayload(bugs []types.BugID) ([]byte, error) {
	payload, err := json.Marshal(types.BugIDStrings(bugs))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode refresh payload").
			WithCause(err)
	}
	return payload, nil
}

type addBugPayload struct {
	Bug string `json:"bug"`
}

func AddBugPayload(bug types.BugID) ([]byte, error) {
	payload, err := json.Marshal(addBugPayload{Bug: string(bug)})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode add_bug payload").
			WithCause(err)
	}
	return payload, nil
}
