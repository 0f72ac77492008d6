package miner

import (
	"context"

	"github.com/looplab/fsm"
)

const (
	StateStopped = "STOPPED"
	StateRunning = "RUNNING"
	StateMining  = "MINING"
)

const (
	EventRun   = "RUN"
	EventMine  = "MINE"
	EventMined = "MINED"
	EventStop  = "STOP"
)

// NewFiniteStateMachine creates the lifecycle state machine of a miner.
// States: STOPPED, RUNNING, MINING.
// Events:
//   - RUN: STOPPED to RUNNING
//   - MINE: RUNNING to MINING, one job at a time
//   - MINED: MINING back to RUNNING, whether the job found a solution or not
//   - STOP: RUNNING or MINING to STOPPED
func (m *Miner) NewFiniteStateMachine(opts ...func(*fsm.FSM)) *fsm.FSM {
	finiteStateMachine := fsm.NewFSM(
		StateStopped,
		fsm.Events{
			{Name: EventRun, Src: []string{StateStopped}, Dst: StateRunning},
			{Name: EventMine, Src: []string{StateRunning}, Dst: StateMining},
			{Name: EventMined, Src: []string{StateMining}, Dst: StateRunning},
			{Name: EventStop, Src: []string{StateRunning, StateMining}, Dst: StateStopped},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				m.logger.Debugf("[Miner] %s: %s -> %s", e.Event, e.Src, e.Dst)
			},
		},
	)

	for _, opt := range opts {
		opt(finiteStateMachine)
	}

	return finiteStateMachine
}
