package coach

// Step names reported through ProgressEvent, in execution order
const (
	StepLoad         = "load"
	StepScore        = "score"
	StepAnalyze      = "analyze"
	StepCoaching     = "coaching"
	StepFeedback     = "feedback"
	StepGamification = "gamification"
	StepConversation = "conversation"
	StepCommit       = "commit"
)

// ProgressEvent represents a progress update while a session is evaluated
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when evaluation progress occurs
type ProgressCallback func(event ProgressEvent)

// emitProgress calls the progress callback if configured
func (e *Engine) emitProgress(step, sessionID, message string, content any) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{
			Step:      step,
			Message:   message,
			SessionID: sessionID,
			Content:   content,
		})
	}
}
