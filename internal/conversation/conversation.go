// Package conversation drives the multi-turn follow-up sequence of an objection.
//
// The state is Idle when Step is 0 with an empty history, and InProgress otherwise.
// Transitions are pure: they take a state and return the next one.
package conversation

import "github.com/jonathan/pitch-coach/internal/types"

// Idle returns the idle state
func Idle() types.ConversationState {
	return types.ConversationState{History: []types.ConversationTurn{}}
}

// Select starts over for a newly chosen base objection, regardless of prior state.
func Select(objectionID int) types.ConversationState {
	state := Idle()
	state.ObjectionID = objectionID
	return state
}

// IsIdle reports whether no follow-up is pending
func IsIdle(state types.ConversationState) bool {
	return state.Step == 0 && len(state.History) == 0
}

// CurrentPrompt returns the prompt the user is answering at the current step:
// the base objection at step 0, else the follow-up surfaced by the previous step.
func CurrentPrompt(state types.ConversationState, objection types.Objection) string {
	if state.Step == 0 || state.Step > len(objection.FollowUps) {
		return objection.ObjectionText
	}
	return objection.FollowUps[state.Step-1]
}

// Advance applies one completed response. While follow-ups remain, the answered
// turn is recorded and the next follow-up becomes the contextual help; once they
// are exhausted the state returns to idle for the same objection.
func Advance(state types.ConversationState, objection types.Objection, response, feedback string) types.ConversationState {
	if state.Step >= len(objection.FollowUps) {
		return Select(objection.ID)
	}

	next := types.ConversationState{
		ObjectionID: objection.ID,
		Step:        state.Step + 1,
		History:     make([]types.ConversationTurn, 0, len(state.History)+1),
	}
	next.History = append(next.History, state.History...)
	next.History = append(next.History, types.ConversationTurn{
		Step:          state.Step,
		ObjectionText: CurrentPrompt(state, objection),
		Response:      response,
		Feedback:      feedback,
	})
	next.ContextualHelp = objection.FollowUps[state.Step]
	return next
}

// NextPrompt returns what the user should answer next: the pending follow-up,
// or the base objection when idle.
func NextPrompt(state types.ConversationState, objection types.Objection) string {
	if state.ContextualHelp != "" {
		return state.ContextualHelp
	}
	return objection.ObjectionText
}
