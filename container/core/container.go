/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package core

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// dataEntryPattern matches one "[name,type,raw];" value entry emitted by
// Serialize's data section. It is deliberately the same shape as
// container/wireprotocol's item pattern; unlike that package's grammar this
// one also tolerates the "|" separators ValueContainer.Serialize places
// between top-level entries, since "|" never matches inside the brackets.
var dataEntryPattern = regexp.MustCompile(`\[(\w+),(.),(.*?)\];`)

// ValueContainer represents a message container with header and values
type ValueContainer struct {
	// Header fields
	sourceID    string
	sourceSubID string
	targetID    string
	targetSubID string
	messageType string
	version     string

	// Values
	units []Value

	// Thread safety
	mu         sync.RWMutex
	threadSafe bool
}

// NewValueContainer creates a new empty container
func NewValueContainer() *ValueContainer {
	return &ValueContainer{
		version: "1.0.0.0",
		units:   make([]Value, 0),
	}
}

// NewValueContainerWithType creates a container with message type
func NewValueContainerWithType(messageType string, units ...Value) *ValueContainer {
	return &ValueContainer{
		messageType: messageType,
		version:     "1.0.0.0",
		units:       units,
	}
}

// NewValueContainerWithTarget creates a container with target info
func NewValueContainerWithTarget(targetID, targetSubID, messageType string, units ...Value) *ValueContainer {
	return &ValueContainer{
		targetID:    targetID,
		targetSubID: targetSubID,
		messageType: messageType,
		version:     "1.0.0.0",
		units:       units,
	}
}

// NewValueContainerFull creates a container with full header
func NewValueContainerFull(sourceID, sourceSubID, targetID, targetSubID, messageType string, units ...Value) *ValueContainer {
	return &ValueContainer{
		sourceID:    sourceID,
		sourceSubID: sourceSubID,
		targetID:    targetID,
		targetSubID: targetSubID,
		messageType: messageType,
		version:     "1.0.0.0",
		units:       units,
	}
}

// EnableThreadSafe enables thread-safe mode
func (c *ValueContainer) EnableThreadSafe() {
	c.threadSafe = true
}

// DisableThreadSafe disables thread-safe mode
func (c *ValueContainer) DisableThreadSafe() {
	c.threadSafe = false
}

// IsThreadSafe returns whether thread-safe mode is enabled
func (c *ValueContainer) IsThreadSafe() bool {
	return c.threadSafe
}

// SetSource sets the source ID and sub ID
func (c *ValueContainer) SetSource(sourceID, sourceSubID string) {
	if c.threadSafe {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	c.sourceID = sourceID
	c.sourceSubID = sourceSubID
}

// SetTarget sets the target ID and sub ID
func (c *ValueContainer) SetTarget(targetID, targetSubID string) {
	if c.threadSafe {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	c.targetID = targetID
	c.targetSubID = targetSubID
}

// SetMessageType sets the message type
func (c *ValueContainer) SetMessageType(messageType string) {
	if c.threadSafe {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	c.messageType = messageType
}

// SwapHeader swaps source and target
func (c *ValueContainer) SwapHeader() {
	c.sourceID, c.targetID = c.targetID, c.sourceID
	c.sourceSubID, c.targetSubID = c.targetSubID, c.sourceSubID
}

// Accessors
func (c *ValueContainer) SourceID() string    { return c.sourceID }
func (c *ValueContainer) SourceSubID() string { return c.sourceSubID }
func (c *ValueContainer) TargetID() string    { return c.targetID }
func (c *ValueContainer) TargetSubID() string { return c.targetSubID }
func (c *ValueContainer) MessageType() string { return c.messageType }
func (c *ValueContainer) Version() string     { return c.version }
func (c *ValueContainer) Values() []Value     { return c.units }

// AddValue adds a value to the container
func (c *ValueContainer) AddValue(value Value) {
	if c.threadSafe {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	c.units = append(c.units, value)
}

// RemoveValue removes all values with the given name
func (c *ValueContainer) RemoveValue(name string) {
	if c.threadSafe {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	newUnits := make([]Value, 0)
	for _, unit := range c.units {
		if unit.Name() != name {
			newUnits = append(newUnits, unit)
		}
	}
	c.units = newUnits
}

// GetValue gets the index-th (zero-based) top-level value with the given
// name, or a NULL BaseValue when there is no such value.
func (c *ValueContainer) GetValue(name string, index int) Value {
	if c.threadSafe {
		c.mu.RLock()
		defer c.mu.RUnlock()
	}
	count := 0
	for _, unit := range c.units {
		if unit.Name() == name {
			if count == index {
				return unit
			}
			count++
		}
	}
	return NewBaseValue("", NullValue, nil)
}

// GetValueTyped implements the typed get_value(name, default) read: it finds
// the first top-level value named name and converts its payload according to
// its kind — NULL to nil, BOOL via its already-parsed value, numeric kinds
// via the value's own ToInt64/ToUInt64/ToFloat64 conversion, everything else
// as the raw string — falling back to defaultValue when no such value
// exists or the conversion fails.
func (c *ValueContainer) GetValueTyped(name string, defaultValue interface{}) interface{} {
	if c.threadSafe {
		c.mu.RLock()
		defer c.mu.RUnlock()
	}
	var v Value
	for _, unit := range c.units {
		if unit.Name() == name {
			v = unit
			break
		}
	}
	if v == nil {
		return defaultValue
	}

	switch v.Type() {
	case NullValue:
		return nil
	case BoolValue:
		b, err := v.ToBool()
		if err != nil {
			return defaultValue
		}
		return b
	case CharValue, Int8Value, Int16Value, Int32Value, Int64Value:
		n, err := v.ToInt64()
		if err != nil {
			return defaultValue
		}
		return n
	case UInt8Value, UInt16Value, UInt32Value, UInt64Value:
		n, err := v.ToUInt64()
		if err != nil {
			return defaultValue
		}
		return n
	case FloatValue, DoubleValue:
		f, err := v.ToFloat64()
		if err != nil {
			return defaultValue
		}
		return f
	default:
		return v.Raw()
	}
}

// GetValues gets all values with the given name
func (c *ValueContainer) GetValues(name string) []Value {
	result := make([]Value, 0)
	for _, unit := range c.units {
		if unit.Name() == name {
			result = append(result, unit)
		}
	}
	return result
}

// ClearValues removes all values
func (c *ValueContainer) ClearValues() {
	c.units = make([]Value, 0)
}

// Copy creates a copy of this container
func (c *ValueContainer) Copy(containingValues bool) *ValueContainer {
	newContainer := &ValueContainer{
		sourceID:    c.sourceID,
		sourceSubID: c.sourceSubID,
		targetID:    c.targetID,
		targetSubID: c.targetSubID,
		messageType: c.messageType,
		version:     c.version,
		units:       make([]Value, 0),
	}

	if containingValues {
		newContainer.units = make([]Value, len(c.units))
		copy(newContainer.units, c.units)
	}

	return newContainer
}

// Serialize serializes the container to string format
func (c *ValueContainer) Serialize() (string, error) {
	// Header: sourceID|sourceSubID|targetID|targetSubID|messageType|version
	header := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		c.sourceID, c.sourceSubID, c.targetID, c.targetSubID,
		c.messageType, c.version)

	// Values
	valueStrs := make([]string, len(c.units))
	for i, unit := range c.units {
		valStr, err := unit.Serialize()
		if err != nil {
			return "", err
		}
		valueStrs[i] = valStr
	}

	data := strings.Join(valueStrs, "|")
	return fmt.Sprintf("%s\n%s", header, data), nil
}

// SerializeArray serializes the container to byte array
func (c *ValueContainer) SerializeArray() ([]byte, error) {
	str, err := c.Serialize()
	if err != nil {
		return nil, err
	}
	return []byte(str), nil
}

// Deserialize deserializes from string
func (c *ValueContainer) Deserialize(data string) error {
	lines := strings.Split(data, "\n")
	if len(lines) < 1 {
		return fmt.Errorf("invalid data format")
	}

	// Parse header
	headerParts := strings.Split(lines[0], "|")
	if len(headerParts) >= 6 {
		c.sourceID = headerParts[0]
		c.sourceSubID = headerParts[1]
		c.targetID = headerParts[2]
		c.targetSubID = headerParts[3]
		c.messageType = headerParts[4]
		c.version = headerParts[5]
	}

	if len(lines) >= 2 && valueFactory != nil {
		units, err := decodeDataEntries(lines[1])
		if err != nil {
			return fmt.Errorf("deserialize values: %w", err)
		}
		c.units = units
	}

	return nil
}

// decodeDataEntries reconstructs the top-level value forest from the flat
// "[name,type,raw];"-entry stream Serialize produces, re-nesting CONTAINER
// entries by their declared child count exactly as container/wireprotocol's
// grammar does: a CONTAINER entry's raw field records how many of the
// immediately following entries are its children.
func decodeDataEntries(data string) ([]Value, error) {
	items := dataEntryPattern.FindAllStringSubmatch(data, -1)
	siblings, consumed, err := decodeDataSiblings(items, 0, len(items))
	if err != nil {
		return nil, err
	}
	if consumed != len(items) {
		return nil, fmt.Errorf("trailing data after %d of %d entries", consumed, len(items))
	}
	return siblings, nil
}

func decodeDataSiblings(items [][]string, from, to int) ([]Value, int, error) {
	siblings := make([]Value, 0, to-from)
	i := from
	for i < to {
		v, next, err := decodeDataEntry(items, i)
		if err != nil {
			return nil, i, err
		}
		siblings = append(siblings, v)
		i = next
	}
	return siblings, i, nil
}

func decodeDataEntry(items [][]string, i int) (Value, int, error) {
	name := items[i][1]
	vtype := ParseValueType(items[i][2])
	raw := UnescapeRaw(items[i][3])
	i++

	v, err := valueFactory(name, vtype, raw)
	if err != nil {
		return nil, i, fmt.Errorf("value %q: %w", name, err)
	}
	if vtype != ContainerValue {
		return v, i, nil
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return nil, i, fmt.Errorf("container %q: invalid child count %q: %w", name, raw, err)
	}
	for n := 0; n < count; n++ {
		if i >= len(items) {
			return nil, i, fmt.Errorf("container %q: expected %d children, ran out of data after %d", name, count, n)
		}
		child, next, err := decodeDataEntry(items, i)
		if err != nil {
			return nil, i, err
		}
		if err := v.AddChild(child); err != nil {
			return nil, i, fmt.Errorf("container %q: %w", name, err)
		}
		i = next
	}
	return v, i, nil
}

// DeserializeArray deserializes from byte array
func (c *ValueContainer) DeserializeArray(data []byte) error {
	return c.Deserialize(string(data))
}

// ToXML converts to XML representation
func (c *ValueContainer) ToXML() (string, error) {
	type XMLContainer struct {
		XMLName     xml.Name `xml:"container"`
		SourceID    string   `xml:"source_id"`
		SourceSubID string   `xml:"source_sub_id"`
		TargetID    string   `xml:"target_id"`
		TargetSubID string   `xml:"target_sub_id"`
		MessageType string   `xml:"message_type"`
		Version     string   `xml:"version"`
		Values      []string `xml:"values>value"`
	}

	xmlCont := XMLContainer{
		SourceID:    c.sourceID,
		SourceSubID: c.sourceSubID,
		TargetID:    c.targetID,
		TargetSubID: c.targetSubID,
		MessageType: c.messageType,
		Version:     c.version,
		Values:      make([]string, 0),
	}

	for _, unit := range c.units {
		unitXML, err := unit.ToXML()
		if err != nil {
			return "", err
		}
		xmlCont.Values = append(xmlCont.Values, unitXML)
	}

	data, err := xml.MarshalIndent(xmlCont, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToJSON converts to JSON representation
func (c *ValueContainer) ToJSON() (string, error) {
	jsonCont := map[string]interface{}{
		"source_id":     c.sourceID,
		"source_sub_id": c.sourceSubID,
		"target_id":     c.targetID,
		"target_sub_id": c.targetSubID,
		"message_type":  c.messageType,
		"version":       c.version,
		"values":        make([]map[string]interface{}, 0),
	}

	values := make([]map[string]interface{}, 0)
	for _, unit := range c.units {
		unitJSON, err := unit.ToJSON()
		if err != nil {
			return "", err
		}
		var unitMap map[string]interface{}
		if err := json.Unmarshal([]byte(unitJSON), &unitMap); err != nil {
			return "", err
		}
		values = append(values, unitMap)
	}
	jsonCont["values"] = values

	data, err := json.MarshalIndent(jsonCont, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToMessagePack serializes to MessagePack binary format
func (c *ValueContainer) ToMessagePack() ([]byte, error) {
	// Create a map structure for MessagePack
	mpData := map[string]interface{}{
		"source_id":     c.sourceID,
		"source_sub_id": c.sourceSubID,
		"target_id":     c.targetID,
		"target_sub_id": c.targetSubID,
		"message_type":  c.messageType,
		"version":       c.version,
		"values":        make([]map[string]interface{}, 0),
	}

	// Serialize each value
	values := make([]map[string]interface{}, 0)
	for _, unit := range c.units {
		valueData := map[string]interface{}{
			"name": unit.Name(),
			"type": unit.Type().String(),
			"data": unit.Data(),
		}
		values = append(values, valueData)
	}
	mpData["values"] = values

	// Marshal to MessagePack
	return msgpack.Marshal(mpData)
}

// FromMessagePack deserializes from MessagePack binary format
func (c *ValueContainer) FromMessagePack(data []byte) error {
	var mpData map[string]interface{}
	if err := msgpack.Unmarshal(data, &mpData); err != nil {
		return err
	}

	// Extract header fields
	if val, ok := mpData["source_id"].(string); ok {
		c.sourceID = val
	}
	if val, ok := mpData["source_sub_id"].(string); ok {
		c.sourceSubID = val
	}
	if val, ok := mpData["target_id"].(string); ok {
		c.targetID = val
	}
	if val, ok := mpData["target_sub_id"].(string); ok {
		c.targetSubID = val
	}
	if val, ok := mpData["message_type"].(string); ok {
		c.messageType = val
	}
	if val, ok := mpData["version"].(string); ok {
		c.version = val
	}

	if rawValues, ok := mpData["values"].([]interface{}); ok && binaryValueFactory != nil {
		units := make([]Value, 0, len(rawValues))
		for _, rv := range rawValues {
			entry, ok := rv.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := entry["name"].(string)
			typeStr, _ := entry["type"].(string)
			data, _ := entry["data"].([]byte)
			v, err := binaryValueFactory(name, ParseValueType(typeStr), data)
			if err != nil {
				return fmt.Errorf("deserialize value %q: %w", name, err)
			}
			units = append(units, v)
		}
		c.units = units
	}

	return nil
}

// SaveToFile saves the container to a file
func (c *ValueContainer) SaveToFile(filePath string) error {
	data, err := c.SerializeArray()
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("file write failed: %w", err)
	}

	return nil
}

// LoadFromFile loads the container from a file
func (c *ValueContainer) LoadFromFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("file read failed: %w", err)
	}

	if err := c.DeserializeArray(data); err != nil {
		return fmt.Errorf("deserialization failed: %w", err)
	}

	return nil
}

// SaveToFileMessagePack saves the container to a file in MessagePack format
func (c *ValueContainer) SaveToFileMessagePack(filePath string) error {
	data, err := c.ToMessagePack()
	if err != nil {
		return fmt.Errorf("messagepack serialization failed: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("file write failed: %w", err)
	}

	return nil
}

// LoadFromFileMessagePack loads the container from a MessagePack file
func (c *ValueContainer) LoadFromFileMessagePack(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("file read failed: %w", err)
	}

	if err := c.FromMessagePack(data); err != nil {
		return fmt.Errorf("messagepack deserialization failed: %w", err)
	}

	return nil
}

// SaveToFileJSON saves the container to a JSON file
func (c *ValueContainer) SaveToFileJSON(filePath string) error {
	jsonStr, err := c.ToJSON()
	if err != nil {
		return fmt.Errorf("json serialization failed: %w", err)
	}

	if err := os.WriteFile(filePath, []byte(jsonStr), 0644); err != nil {
		return fmt.Errorf("file write failed: %w", err)
	}

	return nil
}

// SaveToFileXML saves the container to an XML file
func (c *ValueContainer) SaveToFileXML(filePath string) error {
	xmlStr, err := c.ToXML()
	if err != nil {
		return fmt.Errorf("xml serialization failed: %w", err)
	}

	if err := os.WriteFile(filePath, []byte(xmlStr), 0644); err != nil {
		return fmt.Errorf("file write failed: %w", err)
	}

	return nil
}
