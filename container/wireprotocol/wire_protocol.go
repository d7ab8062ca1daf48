// Package wireprotocol implements the textual wire grammar used to exchange
// containers between processes:
//
//	@header={[key,value];...};@data={[name,kind,raw];...};
//
// Nested CONTAINER values are supported: a CONTAINER entry's raw field is the
// decimal count of children that immediately follow it in data, and children
// are parsed by descending a cursor into the open container and ascending
// once that count of entries has been consumed (cascading ascent when a
// nested container itself completes its count on the same step).
package wireprotocol

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/container/values"
)

// Header keys are the single-character tags "1".."6" for target_id,
// target_sub_id, source_id, source_sub_id, message_type, version
// respectively. A descriptive identifier on the wire would break interop
// with peers that parse by key literal.
const (
	keyTargetID    = "1"
	keyTargetSubID = "2"
	keySourceID    = "3"
	keySourceSubID = "4"
	keyMessageType = "5"
	keyVersion     = "6"
)

var headerPairPattern = regexp.MustCompile(`\[([^,]*),([^\]]*)\];`)
var dataItemPattern = regexp.MustCompile(`\[(\w+),(.),(.*?)\];`)

// Encode renders a container to the wire grammar.
func Encode(c *core.ValueContainer) (string, error) {
	var b strings.Builder

	b.WriteString("@header={")
	writeHeaderPair(&b, keyTargetID, c.TargetID())
	writeHeaderPair(&b, keyTargetSubID, c.TargetSubID())
	writeHeaderPair(&b, keySourceID, c.SourceID())
	writeHeaderPair(&b, keySourceSubID, c.SourceSubID())
	writeHeaderPair(&b, keyMessageType, c.MessageType())
	writeHeaderPair(&b, keyVersion, c.Version())
	b.WriteString("};")

	b.WriteString("@data={")
	for _, v := range c.Values() {
		s, err := v.Serialize()
		if err != nil {
			return "", fmt.Errorf("serialize value %q: %w", v.Name(), err)
		}
		b.WriteString(s)
	}
	b.WriteString("};")

	return b.String(), nil
}

// writeHeaderPair writes one "[key,value];" header entry. Header values are
// not escaped: the wire grammar escapes only Value payloads, and header
// values (ids, message types, the version string) never carry the
// whitespace the escape map exists to hide.
func writeHeaderPair(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "[%s,%s];", key, value)
}

// Decode parses the wire grammar back into a container, reconstructing the
// value forest including any nested CONTAINER values.
func Decode(wireData string) (*core.ValueContainer, error) {
	container := core.NewValueContainer()

	headerSection, err := section(wireData, "@header=")
	if err != nil {
		return nil, err
	}
	for _, m := range headerPairPattern.FindAllStringSubmatch(headerSection, -1) {
		key := m[1]
		value := m[2]
		switch key {
		case keyTargetID:
			container.SetTarget(value, container.TargetSubID())
		case keyTargetSubID:
			container.SetTarget(container.TargetID(), value)
		case keySourceID:
			container.SetSource(value, container.SourceSubID())
		case keySourceSubID:
			container.SetSource(container.SourceID(), value)
		case keyMessageType:
			container.SetMessageType(value)
		case keyVersion:
			// version is informational; the container's own Version()
			// reports the format revision it was built with.
		}
	}

	dataSection, err := section(wireData, "@data=")
	if err != nil {
		return nil, err
	}
	items := dataItemPattern.FindAllStringSubmatch(dataSection, -1)

	vals, _, err := decodeSiblings(items, 0, len(items))
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		container.AddValue(v)
	}

	return container, nil
}

// section extracts the brace-delimited body following a "@key=" marker.
func section(wireData, marker string) (string, error) {
	start := strings.Index(wireData, marker)
	if start < 0 {
		return "", nil
	}
	rest := wireData[start+len(marker):]
	if !strings.HasPrefix(rest, "{") {
		return "", fmt.Errorf("malformed %s section: missing '{'", marker)
	}
	end := strings.Index(rest, "};")
	if end < 0 {
		return "", fmt.Errorf("malformed %s section: missing closing '};'", marker)
	}
	return rest[1:end], nil
}

// decodeSiblings consumes items[from:to] as a flat run of top-level sibling
// values. Each value is decoded by decodeOne, which — for a CONTAINER — also
// descends into exactly its declared child count of following items and
// ascends back out (the cursor can ascend several levels at once when a
// deeply nested container's count is satisfied on the same step). It
// returns the decoded siblings and the index just past the last item
// consumed, which must equal to for a well-formed encoding.
func decodeSiblings(items [][]string, from, to int) ([]core.Value, int, error) {
	result := make([]core.Value, 0)
	i := from
	for i < to {
		v, next, err := decodeOne(items, i)
		if err != nil {
			return nil, i, err
		}
		result = append(result, v)
		i = next
	}
	return result, i, nil
}

// decodeOne decodes the single value at items[i], descending into its
// children first if it is a CONTAINER, and returns the index just past
// everything it consumed (itself plus, recursively, its whole subtree).
func decodeOne(items [][]string, i int) (core.Value, int, error) {
	name := items[i][1]
	kind := core.ParseValueType(items[i][2])
	raw := core.UnescapeRaw(items[i][3])
	i++

	if kind != core.ContainerValue {
		v, err := values.New(name, kind, raw)
		if err != nil {
			return nil, i, fmt.Errorf("value %q: %w", name, err)
		}
		return v, i, nil
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return nil, i, fmt.Errorf("container %q: invalid child count %q: %w", name, raw, err)
	}

	cv := values.NewContainerValue(name)
	for n := 0; n < count; n++ {
		if i >= len(items) {
			return nil, i, fmt.Errorf("container %q: expected %d children, ran out of data after %d", name, count, n)
		}
		child, next, err := decodeOne(items, i)
		if err != nil {
			return nil, i, err
		}
		cv.AddChild(child)
		i = next
	}
	return cv, i, nil
}
