package game

import "errors"

// Sentinel errors for every rejection the ledger can produce. Controllers
// match with errors.Is and translate into the response envelope; the ledger
// itself never writes HTTP status codes or user-facing text.
var (
	// ErrUserNotFound means the session resolved to an id with no row; the
	// caller must treat the session as invalid.
	ErrUserNotFound = errors.New("user not found")

	// ErrTapParams and ErrRewardMismatch are the manipulation-class
	// rejections: the client claimed constants that differ from the
	// server-defined values.
	ErrTapParams      = errors.New("tap parameters do not match server constants")
	ErrRewardMismatch = errors.New("claimed reward does not match server constant")

	ErrNoEnergy = errors.New("not enough energy")

	ErrUnknownTask = errors.New("task not recognized")
	ErrTaskDone    = errors.New("task already completed")

	ErrMinWithdrawal      = errors.New("amount below minimum withdrawal")
	ErrInsufficientPoints = errors.New("invalid amount or insufficient points")

	ErrPaypalEmail   = errors.New("invalid paypal email")
	ErrWireDetails   = errors.New("bank account and routing numbers are required")
	ErrCryptoAddress = errors.New("invalid wallet address")
	ErrUPIFormat     = errors.New("invalid upi id format")
	ErrUnknownMethod = errors.New("unknown withdrawal method")

	// ErrConflict is returned when the conditional update kept losing the
	// race until retries ran out. The client may simply retry.
	ErrConflict = errors.New("concurrent update conflict")
)
