package drs

import "fmt"

// BuildErrorKind discriminates the ways a command build can fail.
type BuildErrorKind int

const (
	// AddressWidthMismatch reports a memory write whose value length
	// disagrees with the target register's declared width.
	AddressWidthMismatch BuildErrorKind = iota
	// ReadOnlyRegister reports a write to a register the servo does
	// not accept writes to.
	ReadOnlyRegister
	// TooManyJogEntries reports a jog command holding more than
	// MaxJogEntries per-servo blocks.
	TooManyJogEntries
)

// BuildError is returned by the terminal Build of a command. No bytes
// are produced alongside it.
type BuildError struct {
	Kind BuildErrorKind
	msg  string
}

func (e *BuildError) Error() string { return e.msg }

func errWidthMismatch(reg string, want, got int) *BuildError {
	return &BuildError{
		Kind: AddressWidthMismatch,
		msg:  fmt.Sprintf("register %s takes %d byte(s), got %d", reg, want, got),
	}
}

func errReadOnly(reg string) *BuildError {
	return &BuildError{
		Kind: ReadOnlyRegister,
		msg:  fmt.Sprintf("register %s is read-only", reg),
	}
}

func errTooManyJogs() *BuildError {
	return &BuildError{
		Kind: TooManyJogEntries,
		msg:  fmt.Sprintf("jog command holds more than %d entries", MaxJogEntries),
	}
}
