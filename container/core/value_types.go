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

// ValueType represents the type of value stored in the container. There are
// exactly 16 kinds; the wire tag of each is a single hex digit ('0'..'f'),
// matching the nibble-encoded type tags used by the other language ports of
// this container format.
type ValueType int

const (
	NullValue ValueType = iota
	BoolValue
	CharValue
	Int8Value
	UInt8Value
	Int16Value
	UInt16Value
	Int32Value
	UInt32Value
	Int64Value
	UInt64Value
	FloatValue
	DoubleValue
	BytesValue
	ContainerValue
	StringValue
)

// String returns the single-character wire tag for the value type.
func (vt ValueType) String() string {
	switch vt {
	case NullValue:
		return "0"
	case BoolValue:
		return "1"
	case CharValue:
		return "2"
	case Int8Value:
		return "3"
	case UInt8Value:
		return "4"
	case Int16Value:
		return "5"
	case UInt16Value:
		return "6"
	case Int32Value:
		return "7"
	case UInt32Value:
		return "8"
	case Int64Value:
		return "9"
	case UInt64Value:
		return "a"
	case FloatValue:
		return "b"
	case DoubleValue:
		return "c"
	case BytesValue:
		return "d"
	case ContainerValue:
		return "e"
	case StringValue:
		return "f"
	default:
		return "0"
	}
}

// ParseValueType converts a single-character wire tag to a ValueType.
func ParseValueType(s string) ValueType {
	switch s {
	case "0":
		return NullValue
	case "1":
		return BoolValue
	case "2":
		return CharValue
	case "3":
		return Int8Value
	case "4":
		return UInt8Value
	case "5":
		return Int16Value
	case "6":
		return UInt16Value
	case "7":
		return Int32Value
	case "8":
		return UInt32Value
	case "9":
		return Int64Value
	case "a", "A":
		return UInt64Value
	case "b", "B":
		return FloatValue
	case "c", "C":
		return DoubleValue
	case "d", "D":
		return BytesValue
	case "e", "E":
		return ContainerValue
	case "f", "F":
		return StringValue
	default:
		return NullValue
	}
}

// TypeName returns a human-readable name for the value type.
func (vt ValueType) TypeName() string {
	switch vt {
	case NullValue:
		return "null"
	case BoolValue:
		return "bool"
	case CharValue:
		return "char"
	case Int8Value:
		return "int8"
	case UInt8Value:
		return "uint8"
	case Int16Value:
		return "int16"
	case UInt16Value:
		return "uint16"
	case Int32Value:
		return "int32"
	case UInt32Value:
		return "uint32"
	case Int64Value:
		return "int64"
	case UInt64Value:
		return "uint64"
	case FloatValue:
		return "float"
	case DoubleValue:
		return "double"
	case BytesValue:
		return "bytes"
	case ContainerValue:
		return "container"
	case StringValue:
		return "string"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of this kind carry a numeric payload.
// Per the wire format this covers CharValue through DoubleValue inclusive.
func (vt ValueType) IsNumeric() bool {
	return vt >= CharValue && vt <= DoubleValue
}

// IsContainer reports whether values of this kind may carry children.
func (vt ValueType) IsContainer() bool {
	return vt == ContainerValue
}

// valueFactory builds a concrete Value from a decoded [name,type,raw] triple.
// core cannot construct concrete types itself (container/values imports
// core, so the reverse import would cycle); RegisterValueFactory lets
// container/values supply its constructor at package init instead, the same
// indirection ValueStore.DeserializeBinary takes as an explicit parameter.
var valueFactory func(name string, vtype ValueType, raw string) (Value, error)

// RegisterValueFactory installs the constructor ValueContainer.Deserialize
// uses to turn parsed value entries back into concrete Values. Called once,
// from container/values's package init.
func RegisterValueFactory(factory func(name string, vtype ValueType, raw string) (Value, error)) {
	valueFactory = factory
}

// binaryValueFactory mirrors valueFactory for the binary-payload path used
// by FromMessagePack: it builds a Value from its little-endian/raw Data()
// bytes rather than a decoded wire string. DeserializeBinary does not read
// it; it takes a factory of the same shape as a parameter.
var binaryValueFactory func(name string, vtype ValueType, data []byte) (Value, error)

// RegisterBinaryValueFactory installs the constructor FromMessagePack uses.
// Called once, from container/values's package init alongside
// RegisterValueFactory.
func RegisterBinaryValueFactory(factory func(name string, vtype ValueType, data []byte) (Value, error)) {
	binaryValueFactory = factory
}
