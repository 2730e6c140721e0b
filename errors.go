/*
Copyright 2025 Llurl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package llurl

import (
	"errors"
	"fmt"
)

// errKind classifies a parse failure. Callers only ever see a boolean
// outcome through ParseError; the kinds keep failures distinguishable for
// the package's own tests.
type errKind uint8

const (
	// kindStructure is an unexpected byte in a state that disallows it.
	kindStructure errKind = iota + 1
	// kindPort is a malformed port suffix: empty, too long, non-digit, or
	// out of range.
	kindPort
	// kindLiteral is an unterminated or malformed bracketed IPv6 literal.
	kindLiteral
	// kindMode is a violation of the acceptance rules of the parsing mode.
	kindMode
	// kindEncoding is a '%' in the host not followed by two hex digits.
	kindEncoding
)

var (
	// errEmptyInput is returned for zero-length input in either mode.
	errEmptyInput = &scanError{kind: kindStructure, message: "empty URL"}
	// errEmptyNetworkPath is returned for a network-path reference ("//")
	// with nothing after the slashes.
	errEmptyNetworkPath = &scanError{
		kind:    kindStructure,
		message: "empty host in network-path reference",
	}
	// errUnterminatedLiteral is returned when input ends inside a bracketed
	// IPv6 literal.
	errUnterminatedLiteral = &scanError{
		kind:    kindLiteral,
		message: "unterminated IPv6 literal in host",
	}
	// errMissingHost is returned in origin-form when a schema was parsed
	// but no authority followed, e.g. "http:" or "http://".
	errMissingHost = &scanError{
		kind:    kindMode,
		message: "schema present but authority is missing",
	}
	// errMissingPort is returned in authority-form when the input carries
	// no port, which CONNECT requires.
	errMissingPort = &scanError{
		kind:    kindMode,
		message: "authority form requires an explicit port",
	}
	// errTrailingAfterAuthority is returned in authority-form when the scan
	// consumed anything beyond host and port.
	errTrailingAfterAuthority = &scanError{
		kind:    kindMode,
		message: "authority form allows only host and port",
	}
)

// newParseError creates a new ParseError, wrapping the original error.
// It returns nil if the input error is nil.
func newParseError(err error) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{Message: err.Error(), Err: errors.Unwrap(err)}
}

// scanError is the internal error type produced by the scanner and the host
// finalizer. The message names the violated rule; the offending byte and its
// offset are attached where one exists. Input bytes are otherwise never
// echoed, since URLs may carry credentials.
type scanError struct {
	kind    errKind
	message string
	b       byte
	off     int
	hasByte bool
}

// unexpectedByte builds a scanError for a byte rejected at a known offset.
func unexpectedByte(kind errKind, message string, b byte, off int) *scanError {
	return &scanError{kind: kind, message: message, b: b, off: off, hasByte: true}
}

// Error formats the message with the offending byte and offset when the
// error carries them.
func (e *scanError) Error() string {
	if e.hasByte {
		return fmt.Sprintf("%s %q at offset %d", e.message, e.b, e.off)
	}
	return e.message
}
