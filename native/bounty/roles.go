package bounty

// The four authorization roles recognised by the ledger. Roles are
// non-hierarchical; each entry point names exactly the roles it accepts.
const (
	// RoleAdmin controls the asset registry, role grants and surplus
	// withdrawal.
	RoleAdmin = "ROLE_ADMIN"
	// RolePauser toggles the module pause switch.
	RolePauser = "ROLE_PAUSER"
	// RoleRewardManager performs batch credit, set and clear operations.
	RoleRewardManager = "ROLE_REWARD_MANAGER"
	// RoleFundManager may extract surplus alongside RoleAdmin and is
	// reserved for future fund-movement operations.
	RoleFundManager = "ROLE_FUND_MANAGER"
)

// KnownRoles lists every role the ledger recognises, in a fixed order.
func KnownRoles() []string {
	return []string{RoleAdmin, RolePauser, RoleRewardManager, RoleFundManager}
}

// ValidRole reports whether the supplied name is one of the recognised roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RolePauser, RoleRewardManager, RoleFundManager:
		return true
	}
	return false
}

// requireRole rejects the caller unless they hold at least one of the listed
// roles.
func (e *Engine) requireRole(caller [20]byte, roles ...string) error {
	if e.state == nil {
		return errNilState
	}
	for _, role := range roles {
		if e.state.HasRole(role, caller[:]) {
			return nil
		}
	}
	return ErrUnauthorized
}
