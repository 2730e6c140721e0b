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

// Package llurl segments raw URLs into byte ranges without allocating or
// copying the input.
//
// Parse handles origin-form input: absolute URLs, rooted paths, the "*" form,
// and network-path references starting with "//". ParseConnect handles the
// authority-form host:port of an HTTP CONNECT request. Both fill a
// caller-owned URL with (offset, length) spans into the input buffer, a
// presence bitmask, and the decoded numeric port. Spans reference the
// caller's buffer, so the buffer must stay alive and unchanged for as long
// as fields are sliced out of it.
//
// The parser validates syntax only. Percent escapes are checked for form in
// the host but never decoded, hostnames are not case-folded or otherwise
// normalized, and bytes outside printable ASCII are rejected; callers with
// internationalized hostnames must convert them first. A host containing
// both '%' and ':' skips the percent-escape check so that IPv6 zone ids such
// as "[fe80::1%eth0]" pass through verbatim; the cost is that a malformed
// escape next to a colon goes undetected.
package llurl

import "fmt"

// Field identifies one of the URL fields a parse can report.
type Field uint8

const (
	// FieldSchema is the scheme without the "://", e.g. "http".
	FieldSchema Field = iota
	// FieldUserinfo is the credentials part before '@', without the '@'.
	FieldUserinfo
	// FieldHost is the host, with the brackets of an IPv6 literal excluded.
	FieldHost
	// FieldPort is the port digits, without the ':'.
	FieldPort
	// FieldPath is the path, including its leading '/'.
	FieldPath
	// FieldQuery is the query without the '?'.
	FieldQuery
	// FieldFragment is the fragment without the '#'.
	FieldFragment

	fieldCount
)

var fieldNames = [fieldCount]string{
	"schema", "userinfo", "host", "port", "path", "query", "fragment",
}

// String returns the lower-case name of the field.
func (f Field) String() string {
	if f < fieldCount {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", uint8(f))
}

// FieldSet is a bitmask recording which fields a parse produced. The zero
// value is the empty set.
type FieldSet uint8

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	return s&(1<<f) != 0
}

// Span is a byte range into the parsed buffer. A present field may have a
// zero-length span, e.g. the query of "/p?".
type Span struct {
	Off int
	Len int
}

// URL is the reusable result of a parse. The zero value is ready to use, and
// the entry points reset it, so one URL can be recycled across many inputs.
// It stores only offsets into the caller's buffer, never the bytes.
type URL struct {
	spans  [fieldCount]Span
	fields FieldSet
	port   uint16
}

// Reset returns the result to the all-absent state.
func (u *URL) Reset() {
	*u = URL{}
}

// setSpan records the byte range of f and marks it present.
func (u *URL) setSpan(f Field, off, n int) {
	u.spans[f] = Span{Off: off, Len: n}
	u.fields |= 1 << f
}

// Parse scans buf as an origin-form URL and fills u. On failure u is left
// all-absent and the returned error says which rule was violated, without
// echoing the input.
func Parse(buf []byte, u *URL) error {
	if err := run(buf, false, u); err != nil {
		return newParseError(err)
	}
	return nil
}

// ParseConnect scans buf as the authority-form ("host:port") of an HTTP
// CONNECT request and fills u. The port is mandatory and nothing may follow
// it. On failure u is left all-absent.
func ParseConnect(buf []byte, u *URL) error {
	if err := run(buf, true, u); err != nil {
		return newParseError(err)
	}
	return nil
}

// Fields returns the set of fields present in the result.
func (u *URL) Fields() FieldSet {
	return u.fields
}

// Span returns the byte range of f and whether f is present.
func (u *URL) Span(f Field) (Span, bool) {
	if !u.fields.Has(f) {
		return Span{}, false
	}
	return u.spans[f], true
}

// Bytes slices f out of buf, which must be the buffer the result was parsed
// from. It returns false when f is absent.
func (u *URL) Bytes(buf []byte, f Field) ([]byte, bool) {
	s, ok := u.Span(f)
	if !ok {
		return nil, false
	}
	return buf[s.Off : s.Off+s.Len], true
}

// Port returns the decoded port value and whether a port was present. A
// present port of "0" yields (0, true).
func (u *URL) Port() (uint16, bool) {
	if !u.fields.Has(FieldPort) {
		return 0, false
	}
	return u.port, true
}

// Schema slices the schema out of buf.
func (u *URL) Schema(buf []byte) ([]byte, bool) {
	return u.Bytes(buf, FieldSchema)
}

// Userinfo slices the userinfo out of buf.
func (u *URL) Userinfo(buf []byte) ([]byte, bool) {
	return u.Bytes(buf, FieldUserinfo)
}

// Host slices the host out of buf. For a bracketed IPv6 literal this is the
// content between the brackets, zone id included.
func (u *URL) Host(buf []byte) ([]byte, bool) {
	return u.Bytes(buf, FieldHost)
}

// Path slices the path out of buf.
func (u *URL) Path(buf []byte) ([]byte, bool) {
	return u.Bytes(buf, FieldPath)
}

// Query slices the query out of buf.
func (u *URL) Query(buf []byte) ([]byte, bool) {
	return u.Bytes(buf, FieldQuery)
}

// Fragment slices the fragment out of buf.
func (u *URL) Fragment(buf []byte) ([]byte, bool) {
	return u.Bytes(buf, FieldFragment)
}

// ParseError represents an error that occurred during URL parsing.
type ParseError struct {
	// Message is the error message.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("URL parse error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
