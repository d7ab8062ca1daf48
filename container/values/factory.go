/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package values

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kcenon/messaging-system/container/core"
)

func init() {
	core.RegisterValueFactory(New)
	core.RegisterBinaryValueFactory(Factory)
}

// New constructs a concrete Value of the given kind from its wire-decoded
// name and raw textual payload. ValueContainer.Deserialize (through
// core.RegisterValueFactory) and the wire-format parser both use it, so
// they agree on how a wire-level [name,type,raw] triple becomes a concrete
// value.
//
// For ContainerValue, raw (the declared child count) is not consulted; the
// returned container starts empty and the caller (the wire-format parser)
// is responsible for attaching children as it descends the tree.
func New(name string, vtype core.ValueType, raw string) (core.Value, error) {
	switch vtype {
	case core.NullValue:
		return NewNullValue(name), nil
	case core.BoolValue:
		return NewBoolValue(name, strings.EqualFold(raw, "true")), nil
	case core.CharValue:
		if len(raw) == 0 {
			return NewCharValue(name, 0), nil
		}
		return NewCharValue(name, raw[0]), nil
	case core.Int8Value:
		n, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("parse int8 value %q: %w", raw, err)
		}
		return NewInt8Value(name, int8(n)), nil
	case core.UInt8Value:
		n, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("parse uint8 value %q: %w", raw, err)
		}
		return NewUInt8Value(name, uint8(n)), nil
	case core.Int16Value:
		n, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("parse int16 value %q: %w", raw, err)
		}
		return NewInt16Value(name, int16(n)), nil
	case core.UInt16Value:
		n, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("parse uint16 value %q: %w", raw, err)
		}
		return NewUInt16Value(name, uint16(n)), nil
	case core.Int32Value:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse int32 value %q: %w", raw, err)
		}
		return NewInt32Value(name, int32(n)), nil
	case core.UInt32Value:
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse uint32 value %q: %w", raw, err)
		}
		return NewUInt32Value(name, uint32(n)), nil
	case core.Int64Value:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse int64 value %q: %w", raw, err)
		}
		return NewInt64Value(name, n), nil
	case core.UInt64Value:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse uint64 value %q: %w", raw, err)
		}
		return NewUInt64Value(name, n), nil
	case core.FloatValue:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, fmt.Errorf("parse float value %q: %w", raw, err)
		}
		return NewFloat32Value(name, float32(f)), nil
	case core.DoubleValue:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse double value %q: %w", raw, err)
		}
		return NewFloat64Value(name, f), nil
	case core.BytesValue:
		b, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse bytes value %q: %w", raw, err)
		}
		return NewBytesValue(name, b), nil
	case core.StringValue:
		return NewStringValue(name, raw), nil
	case core.ContainerValue:
		return NewContainerValue(name), nil
	default:
		return nil, fmt.Errorf("unknown value type %d", vtype)
	}
}

// Factory adapts New to core.ValueStore's binary-deserialization hook, whose
// per-entry payload is a value's little-endian binary Data() rather than its
// textual raw form.
func Factory(name string, vtype core.ValueType, data []byte) (core.Value, error) {
	switch vtype {
	case core.NullValue:
		return NewNullValue(name), nil
	case core.BoolValue:
		return NewBoolValue(name, len(data) > 0 && data[0] != 0), nil
	case core.CharValue:
		if len(data) == 0 {
			return NewCharValue(name, 0), nil
		}
		return NewCharValue(name, data[0]), nil
	case core.Int8Value:
		if len(data) < 1 {
			return nil, fmt.Errorf("int8 value %q: short data", name)
		}
		return NewInt8Value(name, int8(data[0])), nil
	case core.UInt8Value:
		if len(data) < 1 {
			return nil, fmt.Errorf("uint8 value %q: short data", name)
		}
		return NewUInt8Value(name, data[0]), nil
	case core.Int16Value:
		if len(data) < 2 {
			return nil, fmt.Errorf("int16 value %q: short data", name)
		}
		return NewInt16Value(name, int16(binary.LittleEndian.Uint16(data))), nil
	case core.UInt16Value:
		if len(data) < 2 {
			return nil, fmt.Errorf("uint16 value %q: short data", name)
		}
		return NewUInt16Value(name, binary.LittleEndian.Uint16(data)), nil
	case core.Int32Value:
		if len(data) < 4 {
			return nil, fmt.Errorf("int32 value %q: short data", name)
		}
		return NewInt32Value(name, int32(binary.LittleEndian.Uint32(data))), nil
	case core.UInt32Value:
		if len(data) < 4 {
			return nil, fmt.Errorf("uint32 value %q: short data", name)
		}
		return NewUInt32Value(name, binary.LittleEndian.Uint32(data)), nil
	case core.Int64Value:
		if len(data) < 8 {
			return nil, fmt.Errorf("int64 value %q: short data", name)
		}
		return NewInt64Value(name, int64(binary.LittleEndian.Uint64(data))), nil
	case core.UInt64Value:
		if len(data) < 8 {
			return nil, fmt.Errorf("uint64 value %q: short data", name)
		}
		return NewUInt64Value(name, binary.LittleEndian.Uint64(data)), nil
	case core.FloatValue:
		if len(data) < 4 {
			return nil, fmt.Errorf("float value %q: short data", name)
		}
		return NewFloat32Value(name, math.Float32frombits(binary.LittleEndian.Uint32(data))), nil
	case core.DoubleValue:
		if len(data) < 8 {
			return nil, fmt.Errorf("double value %q: short data", name)
		}
		return NewFloat64Value(name, math.Float64frombits(binary.LittleEndian.Uint64(data))), nil
	case core.BytesValue:
		return NewBytesValue(name, data), nil
	case core.StringValue:
		return NewStringValue(name, string(data)), nil
	case core.ContainerValue:
		return NewContainerValue(name), nil
	default:
		return nil, fmt.Errorf("unknown value type %d", vtype)
	}
}
