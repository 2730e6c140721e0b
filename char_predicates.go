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

// charClass is a set of classification flags for a single byte. Every byte
// value maps to its classes through classTable, so the scanner never calls
// into per-character logic on the hot path.
type charClass uint8

const (
	// classAlpha marks ASCII letters.
	classAlpha charClass = 1 << iota
	// classDigit marks ASCII decimal digits.
	classDigit
	// classHexDigit marks ASCII hexadecimal digits.
	classHexDigit
	// classSchema marks bytes valid in a schema after its leading letter:
	// letters, digits, '+', '-', and '.'.
	classSchema
	// classUserinfo marks bytes valid in the userinfo (and host) run:
	// alphanumerics plus the mark and sub-delimiter set.
	classUserinfo
	// classURLChar marks the generic URL character set shared by path,
	// query, and fragment: printable ASCII without space, '"', '<', '>',
	// '\', '^', '`', '{', '|', '}', and the structural '?' and '#'.
	classURLChar
)

// classTable maps each of the 256 byte values to its classes. Control bytes,
// space, DEL, and everything at or above 0x80 belong to no class.
var classTable [256]charClass

// Stop tables for batch scanning: a true entry ends the run. One table per
// scanning context, derived from classTable.
var (
	schemaStop   [256]bool
	pathStop     [256]bool
	queryStop    [256]bool
	fragmentStop [256]bool
)

func init() {
	for b := 'a'; b <= 'z'; b++ {
		classTable[b] |= classAlpha
	}
	for b := 'A'; b <= 'Z'; b++ {
		classTable[b] |= classAlpha
	}
	for b := '0'; b <= '9'; b++ {
		classTable[b] |= classDigit | classHexDigit
	}
	for b := 'a'; b <= 'f'; b++ {
		classTable[b] |= classHexDigit
	}
	for b := 'A'; b <= 'F'; b++ {
		classTable[b] |= classHexDigit
	}

	for i := range classTable {
		if classTable[i]&(classAlpha|classDigit) != 0 {
			classTable[i] |= classSchema | classUserinfo
		}
	}
	for _, b := range []byte("+-.") {
		classTable[b] |= classSchema
	}
	// ALPHANUM + MARK + "%;:&=+$," per the userinfo grammar.
	for _, b := range []byte("-_.~!*'()%;:&=+$,") {
		classTable[b] |= classUserinfo
	}

	for b := '!'; b <= '~'; b++ {
		switch b {
		case '"', '#', '?', '<', '>', '\\', '^', '`', '{', '|', '}':
		default:
			classTable[b] |= classURLChar
		}
	}

	for i := range classTable {
		b := byte(i)
		schemaStop[i] = classTable[i]&classSchema == 0
		pathStop[i] = classTable[i]&classURLChar == 0
		queryStop[i] = classTable[i]&classURLChar == 0 && b != '?'
		fragmentStop[i] = classTable[i]&classURLChar == 0 && b != '?' && b != '#'
	}
}

// isAlpha checks if a byte is an ASCII letter.
func isAlpha(b byte) bool {
	return classTable[b]&classAlpha != 0
}

// isDigit checks if a byte is an ASCII digit.
func isDigit(b byte) bool {
	return classTable[b]&classDigit != 0
}

// isHexDigit checks if a byte is an ASCII hexadecimal digit.
func isHexDigit(b byte) bool {
	return classTable[b]&classHexDigit != 0
}

// isSchemaChar checks if a byte may appear in a schema after its leading letter.
func isSchemaChar(b byte) bool {
	return classTable[b]&classSchema != 0
}

// isUserinfoChar checks if a byte may appear in a userinfo or host run.
func isUserinfoChar(b byte) bool {
	return classTable[b]&classUserinfo != 0
}

// isURLChar checks if a byte belongs to the generic URL character set.
func isURLChar(b byte) bool {
	return classTable[b]&classURLChar != 0
}

// scanUntil returns the index of the first byte at or after i whose entry in
// stop is set, or len(buf) when the run extends to the end of the input.
func scanUntil(buf []byte, i int, stop *[256]bool) int {
	for ; i < len(buf); i++ {
		if stop[buf[i]] {
			return i
		}
	}
	return len(buf)
}
