// Package store persists the whole tracker document as one JSON blob under a
// single fixed key. Every backend shares the same contract: GetState returns
// an empty document for missing or corrupt data, SetState replaces the
// document wholesale.
package store

import (
	"context"
	"encoding/json"

	"seriestracker/internal/model"
)

// StateKey is the namespaced key the tracker document lives under in every
// backend.
const StateKey = "series-tracker"

type Store interface {
	GetState(ctx context.Context) (model.TrackerState, error)
	SetState(ctx context.Context, state model.TrackerState) error
}

// decodeState favors availability over surfacing data loss: an unparsable
// document is treated as no state.
func decodeState(raw []byte) model.TrackerState {
	if len(raw) == 0 {
		return model.EmptyState()
	}
	var state model.TrackerState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.EmptyState()
	}
	if state.Shows == nil {
		state.Shows = []model.Show{}
	}
	return state
}

func encodeState(state model.TrackerState) ([]byte, error) {
	if state.Shows == nil {
		state.Shows = []model.Show{}
	}
	return json.Marshal(state)
}
