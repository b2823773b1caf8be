package bounty

import (
	"fmt"

	"github.com/roothash-pay/auditBounty/core/events"
)

// GrantRole adds an address to one of the recognised roles. Granting a role
// the address already holds is a no-op in state but still notifies.
func (e *Engine) GrantRole(caller [20]byte, role string, addr [20]byte) error {
	if e.state == nil {
		return errNilState
	}
	if err := e.requireRole(caller, RoleAdmin); err != nil {
		return err
	}
	if !ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrUnauthorized, role)
	}
	if isZeroAddress(addr) {
		return ErrInvalidAccount
	}
	if err := e.state.GrantRole(role, addr[:]); err != nil {
		return err
	}
	e.emit(events.RoleGranted{Role: role, Address: addr, Caller: caller})
	return nil
}

// RevokeRole removes an address from a role.
func (e *Engine) RevokeRole(caller [20]byte, role string, addr [20]byte) error {
	if e.state == nil {
		return errNilState
	}
	if err := e.requireRole(caller, RoleAdmin); err != nil {
		return err
	}
	if !ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrUnauthorized, role)
	}
	if isZeroAddress(addr) {
		return ErrInvalidAccount
	}
	if err := e.state.RevokeRole(role, addr[:]); err != nil {
		return err
	}
	e.emit(events.RoleRevoked{Role: role, Address: addr, Caller: caller})
	return nil
}
