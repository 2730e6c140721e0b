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

// scanState identifies a state of the scanning automaton.
type scanState uint8

const (
	// stateDead is the terminal failure sink; the scanner is left here
	// after any violation.
	stateDead scanState = iota
	stateStart
	stateSchema
	stateSchemaSlash
	stateSchemaSlashSlash
	stateServerStart
	stateServer
	stateServerWithAt
	statePath
	stateQueryOrFragment
	stateQuery
	stateFragment
)

const (
	// networkPathPrefixLength is the length of the leading "//" of a
	// network-path reference.
	networkPathPrefixLength = 2
)

// scanner holds the state for a single parsing operation. It lives for one
// call and is never shared.
type scanner struct {
	buf     []byte
	u       *URL
	connect bool

	state    scanState
	field    Field // field currently being accumulated
	fieldOff int   // its start offset
	hasField bool

	// portColon is the offset of the first ':' seen outside brackets in the
	// open host run, or -1. It is reset whenever a host field opens.
	portColon int
}

// run is the single entry point behind Parse and ParseConnect. It scans buf
// once, fills u, and guarantees u is all-absent when an error is returned.
func run(buf []byte, connect bool, u *URL) error {
	u.Reset()
	if len(buf) == 0 {
		return errEmptyInput
	}

	s := &scanner{buf: buf, u: u, connect: connect, state: stateStart, portColon: -1}
	from := 0
	switch {
	case connect:
		s.state = stateServerStart
	case len(buf) >= networkPathPrefixLength && buf[0] == '/' && buf[1] == '/':
		// Network-path reference: parse past the "//" directly as an
		// authority. The schema field stays absent.
		if len(buf) == networkPathPrefixLength {
			return errEmptyNetworkPath
		}
		s.state = stateServerStart
		from = networkPathPrefixLength
	}

	if err := s.scan(from); err != nil {
		u.Reset()
		return err
	}
	return nil
}

// fail parks the scanner in the dead state and passes the error through.
func (s *scanner) fail(err error) error {
	s.state = stateDead
	return err
}

// openField starts accumulating f at offset off.
func (s *scanner) openField(f Field, off int) {
	s.field, s.fieldOff, s.hasField = f, off, true
}

// closeField commits the open field with end as its exclusive boundary.
func (s *scanner) closeField(end int) {
	s.u.setSpan(s.field, s.fieldOff, end-s.fieldOff)
	s.hasField = false
}

// scan drives the automaton over buf[from:]. Each iteration dispatches one
// byte; a transition that must re-examine the same byte in its new state
// leaves the cursor in place instead of advancing it. Runs of bytes that
// cannot change state are consumed with table scans.
func (s *scanner) scan(from int) error {
	buf := s.buf
	i := from

	for i < len(buf) {
		b := buf[i]

		switch s.state {
		case stateStart:
			switch {
			case b == '/' || b == '*':
				s.openField(FieldPath, i)
				s.state = statePath
			case isAlpha(b):
				s.openField(FieldSchema, i)
				s.state = stateSchema
			default:
				return s.fail(unexpectedByte(kindStructure, "invalid first byte of URL", b, i))
			}
			// The opened state consumes this byte itself.

		case stateSchema:
			j := scanUntil(buf, i, &schemaStop)
			i = j
			if j == len(buf) {
				break // origin acceptance rejects a schema with no authority
			}
			if buf[j] != ':' {
				return s.fail(unexpectedByte(kindStructure, "invalid byte in schema", buf[j], j))
			}
			s.closeField(j)
			s.state = stateSchemaSlash
			i = j + 1

		case stateSchemaSlash:
			if b != '/' {
				return s.fail(unexpectedByte(kindStructure, "expected '/' after schema", b, i))
			}
			s.state = stateSchemaSlashSlash
			i++

		case stateSchemaSlashSlash:
			if b != '/' {
				return s.fail(unexpectedByte(kindStructure, "expected '//' after schema", b, i))
			}
			s.state = stateServerStart
			i++

		case stateServerStart:
			if b == '/' || b == '?' || b == '#' {
				return s.fail(unexpectedByte(kindStructure, "empty host in authority", b, i))
			}
			s.openField(FieldHost, i)
			s.portColon = -1
			s.state = stateServer
			// Re-dispatch the byte as the first host byte.

		case stateServer, stateServerWithAt:
			n, err := s.serverByte(b, i)
			if err != nil {
				return s.fail(err)
			}
			i = n

		case statePath:
			j := scanUntil(buf, i, &pathStop)
			i = j
			if j < len(buf) {
				s.closeField(j)
				s.state = stateQueryOrFragment
				// Re-dispatch the terminator.
			}

		case stateQueryOrFragment:
			switch b {
			case '?':
				s.openField(FieldQuery, i+1)
				s.state = stateQuery
			case '#':
				s.openField(FieldFragment, i+1)
				s.state = stateFragment
			default:
				return s.fail(unexpectedByte(kindStructure, "invalid byte after path", b, i))
			}
			i++

		case stateQuery:
			j := scanUntil(buf, i, &queryStop)
			i = j
			if j < len(buf) {
				if buf[j] != '#' {
					return s.fail(unexpectedByte(kindStructure, "invalid byte in query", buf[j], j))
				}
				s.closeField(j)
				s.openField(FieldFragment, j+1)
				s.state = stateFragment
				i = j + 1
			}

		case stateFragment:
			j := scanUntil(buf, i, &fragmentStop)
			i = j
			if j < len(buf) {
				return s.fail(unexpectedByte(kindStructure, "invalid byte in fragment", buf[j], j))
			}

		case stateDead:
			return s.fail(&scanError{kind: kindStructure, message: "scanner in dead state"})
		}
	}

	if s.hasField {
		if s.field == FieldHost {
			if err := s.finalizeHost(len(buf)); err != nil {
				return s.fail(err)
			}
		} else {
			s.closeField(len(buf))
		}
	}

	return s.accept()
}

// serverByte dispatches one byte in the server and serverWithAt states and
// returns the cursor position to continue from.
func (s *scanner) serverByte(b byte, i int) (int, error) {
	switch {
	case b == '/':
		if err := s.finalizeHost(i); err != nil {
			return 0, err
		}
		s.openField(FieldPath, i)
		s.state = statePath
		return i, nil // the '/' opens the path and is re-dispatched into it

	case b == '?':
		if err := s.finalizeHost(i); err != nil {
			return 0, err
		}
		s.openField(FieldQuery, i+1)
		s.state = stateQuery
		return i + 1, nil

	case b == '@':
		if s.state == stateServerWithAt {
			return 0, unexpectedByte(kindStructure, "second '@' in authority", b, i)
		}
		// Everything accumulated so far was userinfo, not host. Hand the
		// span over and open a fresh host just past the '@'. Userinfo and
		// host each track their own candidate port colon.
		s.u.setSpan(FieldUserinfo, s.fieldOff, i-s.fieldOff)
		s.openField(FieldHost, i+1)
		s.portColon = -1
		s.state = stateServerWithAt
		return i + 1, nil

	case b == '[':
		closing, err := scanIPv6Literal(s.buf, i)
		if err != nil {
			return 0, err
		}
		return closing + 1, nil

	case b == ']':
		return 0, unexpectedByte(kindStructure, "']' outside IPv6 literal", b, i)

	case isUserinfoChar(b):
		if b == ':' && s.portColon < 0 {
			s.portColon = i
		}
		return i + 1, nil

	default:
		return 0, unexpectedByte(kindStructure, "invalid byte in host", b, i)
	}
}

// accept applies the mode-specific rules after the scan has consumed the
// whole input.
func (s *scanner) accept() error {
	if s.connect {
		// CONNECT allows nothing past host and port, and the port is
		// mandatory.
		if s.state != stateServer && s.state != stateServerWithAt {
			return s.fail(errTrailingAfterAuthority)
		}
		if !s.u.fields.Has(FieldPort) {
			return s.fail(errMissingPort)
		}
		return nil
	}

	if s.u.fields.Has(FieldSchema) && !s.u.fields.Has(FieldHost) {
		return s.fail(errMissingHost)
	}
	return nil
}
