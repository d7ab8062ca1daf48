/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
****************************************************************************/

package core

import "strings"

// Whitespace bytes that would otherwise break the "[name,type,raw];" grammar
// are escaped to a placeholder token before a value's raw payload is written
// onto the wire, and unescaped on the way back in.
const (
	escCR  = "</0x0A;>"
	escLF  = "</0x0B;>"
	escSP  = "</0x0C;>"
	escTab = "</0x0D;>"
)

var escapeReplacer = strings.NewReplacer(
	"\r", escCR,
	"\n", escLF,
	" ", escSP,
	"\t", escTab,
)

var unescapeReplacer = strings.NewReplacer(
	escCR, "\r",
	escLF, "\n",
	escSP, " ",
	escTab, "\t",
)

// EscapeRaw replaces embedded whitespace in a value's raw textual payload
// with wire-safe placeholder tokens.
func EscapeRaw(raw string) string {
	return escapeReplacer.Replace(raw)
}

// UnescapeRaw reverses EscapeRaw.
func UnescapeRaw(escaped string) string {
	return unescapeReplacer.Replace(escaped)
}
