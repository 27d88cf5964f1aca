package daemon

import (
	"time"

	"github.com/mstead/pomo/internal/timer"
)

// Request represents a JSON-RPC request from a client.
type Request struct {
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
	ID     int    `json:"id,omitempty"`
}

// Response represents a JSON-RPC response to a client.
type Response struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	ID     int    `json:"id,omitempty"`
}

// StateResponse is the timer state as acked to clients after every
// successful command.
type StateResponse struct {
	Phase             string  `json:"phase"`
	Running           bool    `json:"running"`
	ElapsedSecs       float64 `json:"elapsed_secs"`
	DurationSecs      int     `json:"duration_secs"`
	RemainingSecs     int     `json:"remaining_secs"`
	Remaining         string  `json:"remaining"`
	Progress          float64 `json:"progress"`
	Iteration         int     `json:"iteration"`
	SessionsCompleted int     `json:"sessions_completed"`
}

// newStateResponse converts an engine snapshot to the wire form.
func newStateResponse(st timer.State) StateResponse {
	return StateResponse{
		Phase:             st.Phase.String(),
		Running:           st.Running,
		ElapsedSecs:       st.Elapsed.Seconds(),
		DurationSecs:      int(st.Duration() / time.Second),
		RemainingSecs:     int(st.Remaining() / time.Second),
		Remaining:         st.RemainingFormatted(),
		Progress:          st.Progress(),
		Iteration:         st.Iteration,
		SessionsCompleted: st.SessionsCompleted,
	}
}

// StatusResponse contains daemon status information.
type StatusResponse struct {
	Timer     StateResponse `json:"timer"`
	Uptime    string        `json:"uptime"`
	StartTime string        `json:"start_time"`
}

// SetTimeParams contains parameters for the set_time method.
type SetTimeParams struct {
	Phase   string `json:"phase"`
	Seconds int    `json:"seconds"`
}
