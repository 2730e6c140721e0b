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

//nolint:testpackage // This is a white-box test file for an internal package. It needs to be in the same package to test unexported functions.
package llurl

import (
	"errors"
	"testing"
)

// TestRun_ErrorIdentity tests that rejected inputs surface the expected
// sentinel errors before the public wrapper is applied.
func TestRun_ErrorIdentity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		connect bool
		want    error
	}{
		{name: "empty origin", input: "", want: errEmptyInput},
		{name: "empty connect", input: "", connect: true, want: errEmptyInput},
		{name: "bare network path", input: "//", want: errEmptyNetworkPath},
		{name: "bare schema word", input: "http", want: errMissingHost},
		{name: "schema only", input: "http:", want: errMissingHost},
		{name: "schema and slashes only", input: "http://", want: errMissingHost},
		{name: "unterminated literal", input: "http://[::1", want: errUnterminatedLiteral},
		{name: "connect without port", input: "example.com", connect: true, want: errMissingPort},
		{name: "connect with path", input: "example.com:443/x", connect: true, want: errTrailingAfterAuthority},
		{name: "connect with query", input: "example.com:443?x", connect: true, want: errTrailingAfterAuthority},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var u URL
			err := run([]byte(tc.input), tc.connect, &u)
			if !errors.Is(err, tc.want) {
				t.Errorf("run(%q) error = %v, want %v", tc.input, err, tc.want)
			}
		})
	}
}

// TestRun_ErrorKinds tests the internal classification of failures against
// the violation taxonomy.
func TestRun_ErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		connect bool
		want    errKind
	}{
		{name: "invalid first byte", input: "?query", want: kindStructure},
		{name: "space in host", input: "http://exa mple.com/", want: kindStructure},
		{name: "second at sign", input: "http://a@@b/", want: kindStructure},
		{name: "stray closing bracket", input: "http://a]b/", want: kindStructure},
		{name: "letters in port", input: "http://host:8a/", want: kindPort},
		{name: "port too long", input: "http://host:123456/", want: kindPort},
		{name: "port out of range", input: "http://host:65536/", want: kindPort},
		{name: "bad byte in literal", input: "http://[z]/", want: kindLiteral},
		{name: "unterminated literal", input: "http://[::1", want: kindLiteral},
		{name: "connect missing port", input: "host", connect: true, want: kindMode},
		{name: "origin missing host", input: "http:", want: kindMode},
		{name: "bad host escape", input: "http://a%xy/", want: kindEncoding},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var u URL
			err := run([]byte(tc.input), tc.connect, &u)
			if err == nil {
				t.Fatalf("run(%q) succeeded, want kind %d", tc.input, tc.want)
			}
			var se *scanError
			if !errors.As(err, &se) {
				t.Fatalf("run(%q) error type = %T, want *scanError", tc.input, err)
			}
			if se.kind != tc.want {
				t.Errorf("run(%q) kind = %d, want %d", tc.input, se.kind, tc.want)
			}
		})
	}
}

// TestScanner_DeadAfterFailure tests that a failed scan parks the automaton
// in the dead state.
func TestScanner_DeadAfterFailure(t *testing.T) {
	var u URL
	s := &scanner{buf: []byte("?"), u: &u, state: stateStart, portColon: -1}
	if err := s.scan(0); err == nil {
		t.Fatal("expected the scan to fail")
	}
	if s.state != stateDead {
		t.Errorf("scanner state = %d, want stateDead", s.state)
	}
}

// TestRun_ResetsPreviousResult tests that run wipes stale fields before
// scanning new input.
func TestRun_ResetsPreviousResult(t *testing.T) {
	var u URL
	u.setSpan(FieldFragment, 3, 9)
	u.port = 1234

	if err := run([]byte("/x"), false, &u); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if u.Fields().Has(FieldFragment) {
		t.Error("stale fragment survived a new parse")
	}
	if _, ok := u.Port(); ok {
		t.Error("stale port survived a new parse")
	}
	if path, ok := u.Bytes([]byte("/x"), FieldPath); !ok || string(path) != "/x" {
		t.Errorf("path = %q, %v, want \"/x\", true", path, ok)
	}
}

// TestScanner_FieldBookkeeping tests the open/close helpers directly.
func TestScanner_FieldBookkeeping(t *testing.T) {
	var u URL
	s := &scanner{buf: []byte("abcdef"), u: &u, portColon: -1}

	s.openField(FieldQuery, 2)
	if !s.hasField || s.field != FieldQuery || s.fieldOff != 2 {
		t.Fatalf("openField state = (%v, %s, %d), want (true, query, 2)", s.hasField, s.field, s.fieldOff)
	}
	if u.Fields().Has(FieldQuery) {
		t.Error("field marked present before it closed")
	}

	s.closeField(5)
	if s.hasField {
		t.Error("closeField left the field open")
	}
	span, ok := u.Span(FieldQuery)
	if !ok || span != (Span{Off: 2, Len: 3}) {
		t.Errorf("span = %+v, %v, want {2 3}, true", span, ok)
	}
}
