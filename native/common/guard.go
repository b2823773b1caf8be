package common

import "errors"

// ErrModulePaused is returned by Guard when the named module is paused.
var ErrModulePaused = errors.New("module paused")

// PauseView exposes the read side of the process pause flags.
type PauseView interface {
	IsPaused(module string) bool
}

// Guard rejects the operation when the module is paused. A nil view or empty
// module name disables the check.
func Guard(p PauseView, module string) error {
	if p == nil || module == "" {
		return nil
	}
	if p.IsPaused(module) {
		return ErrModulePaused
	}
	return nil
}
