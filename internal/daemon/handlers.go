package daemon

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mstead/pomo/internal/event"
	"github.com/mstead/pomo/internal/timer"
)

// handleRequest dispatches the request to the appropriate handler.
// Malformed or unknown requests return a protocol error and leave the
// engine untouched.
func (d *Daemon) handleRequest(req *Request) Response {
	switch req.Method {
	case "toggle":
		return d.applyCommand(timer.Command{Op: timer.Toggle})
	case "start":
		return d.applyCommand(timer.Command{Op: timer.Start})
	case "stop":
		return d.applyCommand(timer.Command{Op: timer.Stop})
	case "reset":
		return d.applyCommand(timer.Command{Op: timer.Reset})
	case "skip":
		return d.applyCommand(timer.Command{Op: timer.Skip})
	case "set_time":
		return d.handleSetTime(req)
	case "status":
		return d.handleStatus()
	case "shutdown":
		return d.handleShutdown()
	default:
		return Response{Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// Apply runs one command on the engine, publishes the resulting frame,
// and forwards any forced transition. It is the single mutation entry
// point shared by the RPC handlers and the in-process TUI.
func (d *Daemon) Apply(cmd timer.Command) (timer.State, error) {
	st, ev, err := d.engine.Apply(cmd)
	if err != nil {
		return st, err
	}

	if ev != nil && d.router != nil {
		d.router.Emit(event.NewTransition(*ev))
	}
	d.publishFrame(st)

	return st, nil
}

// applyCommand wraps Apply for the wire protocol.
func (d *Daemon) applyCommand(cmd timer.Command) Response {
	st, err := d.Apply(cmd)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Result: newStateResponse(st)}
}

// handleSetTime validates and applies a set_time request.
func (d *Daemon) handleSetTime(req *Request) Response {
	// Re-marshal the loosely typed params into the expected shape.
	data, err := json.Marshal(req.Params)
	if err != nil {
		return Response{Error: fmt.Sprintf("invalid params: %v", err)}
	}
	var params SetTimeParams
	if err := json.Unmarshal(data, &params); err != nil {
		return Response{Error: fmt.Sprintf("invalid params: %v", err)}
	}

	phase, err := timer.ParsePhase(params.Phase)
	if err != nil {
		return Response{Error: err.Error()}
	}

	return d.applyCommand(timer.Command{
		Op:      timer.SetTime,
		Phase:   phase,
		Seconds: params.Seconds,
	})
}

// handleStatus returns the current timer state and daemon uptime without
// mutating anything.
func (d *Daemon) handleStatus() Response {
	st := d.engine.Snapshot()

	d.mu.RLock()
	startTime := d.startTime
	d.mu.RUnlock()

	return Response{
		Result: StatusResponse{
			Timer:     newStateResponse(st),
			Uptime:    time.Since(startTime).Truncate(time.Second).String(),
			StartTime: startTime.Format(time.RFC3339),
		},
	}
}

// handleShutdown schedules daemon termination after the response is sent.
func (d *Daemon) handleShutdown() Response {
	go func() {
		time.Sleep(100 * time.Millisecond)
		d.requestShutdown()
	}()
	return Response{Result: "shutting down"}
}
