package bounty

import (
	"github.com/roothash-pay/auditBounty/core/events"
)

// Pause engages the module pause switch. While paused, funding and claims
// are rejected; registry, reward and surplus administration stay available.
func (e *Engine) Pause(caller [20]byte) error {
	if e.state == nil {
		return errNilState
	}
	if err := e.requireRole(caller, RolePauser); err != nil {
		return err
	}
	if err := e.state.SetPaused(moduleName, true); err != nil {
		return err
	}
	e.emit(events.Paused{Caller: caller})
	e.telemetry.SetPaused(true)
	return nil
}

// Unpause releases the module pause switch.
func (e *Engine) Unpause(caller [20]byte) error {
	if e.state == nil {
		return errNilState
	}
	if err := e.requireRole(caller, RolePauser); err != nil {
		return err
	}
	if err := e.state.SetPaused(moduleName, false); err != nil {
		return err
	}
	e.emit(events.Unpaused{Caller: caller})
	e.telemetry.SetPaused(false)
	return nil
}
