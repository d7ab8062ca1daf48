/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package core

import "testing"

func TestEscapeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"Empty", ""},
		{"NoWhitespace", "plain_payload"},
		{"Spaces", "hello world again"},
		{"Tabs", "col1\tcol2\tcol3"},
		{"Newlines", "line1\nline2\r\nline3"},
		{"AllKinds", " \t\r\n mixed \n\r\t "},
		{"DelimiterChars", "[a,b];[c,d];"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			escaped := EscapeRaw(tc.in)
			if got := UnescapeRaw(escaped); got != tc.in {
				t.Errorf("round trip of %q: got %q (escaped %q)", tc.in, got, escaped)
			}
		})
	}
}

// The escaped form of whitespace must never contain raw whitespace itself,
// or the wire grammar's delimiter scan could split inside a payload.
func TestEscapedFormCarriesNoWhitespace(t *testing.T) {
	escaped := EscapeRaw("a b\tc\rd\ne")
	for _, r := range escaped {
		switch r {
		case ' ', '\t', '\r', '\n':
			t.Fatalf("escaped form %q still contains whitespace", escaped)
		}
	}
}
