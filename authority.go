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

import "bytes"

const (
	// maxPortDigits is the longest accepted port suffix; 65535 has five.
	maxPortDigits = 5
	// maxPortValue is the largest valid TCP/UDP port number.
	maxPortValue = 65535
)

// finalizeHost closes the host field open at s.fieldOff using end as its
// exclusive boundary. It splits off and validates a port suffix, redefines
// bracketed IPv6 literals to their content, checks percent encoding, and
// commits the resulting host (and port) spans to the result. Any violation
// fails the whole parse.
func (s *scanner) finalizeHost(end int) error {
	start := s.fieldOff
	hostStart, hostEnd := start, end
	portStart, portEnd := 0, 0
	hasPort := false

	if start < end && s.buf[start] == '[' {
		// The literal was scanned up front, so the bracket pair is known to
		// be inside the range; the reported host excludes the brackets.
		closing := bytes.IndexByte(s.buf[start:end], ']')
		if closing < 0 {
			return errUnterminatedLiteral
		}
		closing += start
		hostStart, hostEnd = start+1, closing
		if closing+1 < end && s.buf[closing+1] == ':' {
			portStart, portEnd = closing+2, end
			hasPort = true
		}
	} else if s.portColon >= 0 && s.portColon < end-1 {
		// First unbracketed colon splits host and port. A colon that is the
		// last byte of the range stays in the host instead.
		hostEnd = s.portColon
		portStart, portEnd = s.portColon+1, end
		hasPort = true
	}

	var portValue uint16
	if hasPort {
		v, err := parsePort(s.buf, portStart, portEnd)
		if err != nil {
			return err
		}
		portValue = v
	}

	if err := validateHostEncoding(s.buf, hostStart, hostEnd); err != nil {
		return err
	}

	s.u.setSpan(FieldHost, hostStart, hostEnd-hostStart)
	if hasPort {
		s.u.setSpan(FieldPort, portStart, portEnd-portStart)
		s.u.port = portValue
	}
	return nil
}

// parsePort decodes the candidate port in buf[start:end] as a base-10
// number. It must be one to five ASCII digits with a value of at most 65535;
// leading zeros are accepted.
func parsePort(buf []byte, start, end int) (uint16, error) {
	if start >= end {
		return 0, &scanError{kind: kindPort, message: "empty port"}
	}
	if end-start > maxPortDigits {
		return 0, &scanError{kind: kindPort, message: "port is too long"}
	}

	val := 0
	for i := start; i < end; i++ {
		b := buf[i]
		if !isDigit(b) {
			return 0, unexpectedByte(kindPort, "invalid byte in port", b, i)
		}
		val = val*10 + int(b-'0')
	}
	if val > maxPortValue {
		return 0, &scanError{kind: kindPort, message: "port is out of range"}
	}
	return uint16(val), nil
}

// scanIPv6Literal consumes a bracketed literal starting at the '[' at open
// and returns the index of the closing ']'. Bytes before the first '%' must
// be hex digits, ':', or '.'; after a '%' anything is accepted up to the
// bracket (an interface zone id, which is not validated).
func scanIPv6Literal(buf []byte, open int) (int, error) {
	inZone := false
	for i := open + 1; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b == ']':
			return i, nil
		case inZone:
		case isHexDigit(b) || b == ':' || b == '.':
		case b == '%':
			inZone = true
		default:
			return 0, unexpectedByte(kindLiteral, "invalid byte in IPv6 literal", b, i)
		}
	}
	return 0, errUnterminatedLiteral
}

// validateHostEncoding checks that every '%' in the final host range is
// followed by two hex digits. Validation is skipped entirely when the range
// contains both '%' and ':', tolerating IPv6 zone ids such as
// "fe80::1%eth0"; see the package documentation for the trade-off.
func validateHostEncoding(buf []byte, start, end int) error {
	host := buf[start:end]
	if bytes.IndexByte(host, '%') < 0 {
		return nil
	}
	if bytes.IndexByte(host, ':') >= 0 {
		return nil
	}

	for i := 0; i < len(host); i++ {
		if host[i] != '%' {
			continue
		}
		if i+2 >= len(host) || !isHexDigit(host[i+1]) || !isHexDigit(host[i+2]) {
			return unexpectedByte(kindEncoding, "invalid percent encoding in host", '%', start+i)
		}
		i += 2
	}
	return nil
}
