package bounty

import "errors"

var (
	ErrInvalidAsset        = errors.New("bounty: invalid asset")
	ErrUnsupportedAsset    = errors.New("bounty: asset not supported")
	ErrInvalidAccount      = errors.New("bounty: invalid account")
	ErrInvalidAmount       = errors.New("bounty: amount must be positive")
	ErrAmountMismatch      = errors.New("bounty: attached value does not match amount")
	ErrArrayLengthMismatch = errors.New("bounty: accounts and amounts length mismatch")
	ErrEmptyBatch          = errors.New("bounty: empty batch")
	ErrCapacityExceeded    = errors.New("bounty: pending rewards exceed custody balance")
	ErrNoPendingReward     = errors.New("bounty: no pending reward")
	ErrInsufficientBalance = errors.New("bounty: custody balance below pending reward")
	ErrTransferFailed      = errors.New("bounty: custody transfer failed")
	ErrNoSurplus           = errors.New("bounty: no surplus available")
	ErrExceedsSurplus      = errors.New("bounty: amount exceeds surplus")
	ErrUnauthorized        = errors.New("bounty: unauthorized")
	ErrSystemPaused        = errors.New("bounty: system paused")
)

var (
	errNilState = errors.New("bounty: state not configured")
	errNilVault = errors.New("bounty: vault not configured")
)
