package proc

import "errors"

var (
	// ErrNoStat indicates that the per-PID stat file was empty or missing
	// the parenthesised comm field.
	ErrNoStat = errors.New("proc: malformed or empty stat")

	// ErrShortStat indicates that the stat file had fewer fields than expected.
	ErrShortStat = errors.New("proc: short stat")
)
