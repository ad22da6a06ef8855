// Package code defines the agent's error code table. Every error surfaced
// across the four strata of spec §7 (ValidationError, ConfUtilError,
// ShellError, WireGuardLibError) is registered here with an HTTP status and
// a user-safe message, following the marmotedu/errors Coder convention.
package code

import "github.com/marmotedu/errors"

// ErrCode implements the errors.Coder interface.
type ErrCode struct {
	// C is the machine-readable business error code.
	C int
	// HTTP is the HTTP status this code maps to.
	HTTP int
	// Ext is the external, user-safe message.
	Ext string
	// Ref is an optional reference document URL.
	Ref string
}

var _ errors.Coder = &ErrCode{}

func (c *ErrCode) Code() int { return c.C }

func (c *ErrCode) String() string { return c.Ext }

func (c *ErrCode) HTTPStatus() int {
	if c.HTTP == 0 {
		return 500
	}
	return c.HTTP
}

func (c *ErrCode) Reference() string { return c.Ref }

var codes = map[int]*ErrCode{}

// register records a code -> (httpStatus, message) mapping and registers it
// with the errors package so errors.ParseCoder can resolve it later.
func register(code int, httpStatus int, message string) {
	coder := &ErrCode{C: code, HTTP: httpStatus, Ext: message}
	codes[code] = coder
	errors.MustRegister(coder)
}

// Message returns the registered user-safe message for code, or "unknown
// error" if it was never registered.
func Message(code int) string {
	if c, ok := codes[code]; ok {
		return c.Ext
	}
	return "unknown error"
}
