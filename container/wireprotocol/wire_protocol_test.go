package wireprotocol

import (
	"strings"
	"testing"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/container/values"
)

func TestEncodeDecodeFlatRoundTrip(t *testing.T) {
	original := core.NewValueContainerWithTarget("server", "", "greeting",
		values.NewStringValue("text", "hello"),
		values.NewInt32Value("count", 3),
		values.NewBoolValue("urgent", true),
	)
	original.SetSource("client-1", "")

	wire, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.SourceID() != "client-1" || decoded.TargetID() != "server" {
		t.Fatalf("header mismatch: source=%s target=%s", decoded.SourceID(), decoded.TargetID())
	}
	if decoded.MessageType() != "greeting" {
		t.Fatalf("message_type = %q", decoded.MessageType())
	}

	text := decoded.GetValue("text", 0)
	if text == nil {
		t.Fatal("missing text value")
	}
	if s, _ := text.ToString(); s != "hello" {
		t.Fatalf("text = %q", s)
	}

	count := decoded.GetValue("count", 0)
	if n, _ := count.ToInt32(); n != 3 {
		t.Fatalf("count = %d", n)
	}
}

// TestEncodeDecodeNestedContainerRoundTrip exercises a two-level-deep nested
// container (a "profile" holding a "settings" sub-container) to confirm the
// cursor descends and cascades back up through both levels correctly.
func TestEncodeDecodeNestedContainerRoundTrip(t *testing.T) {
	settings := values.NewContainerValue("settings",
		values.NewBoolValue("dark_mode", true),
		values.NewInt32Value("font_size", 14),
	)
	profile := values.NewContainerValue("profile",
		values.NewStringValue("display_name", "ada"),
		settings,
	)

	original := core.NewValueContainerWithType("user_profile", profile)

	wire, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	decodedProfile := decoded.GetValue("profile", 0)
	if decodedProfile == nil {
		t.Fatal("missing profile value")
	}
	profileContainer, ok := decodedProfile.(*values.ContainerValue)
	if !ok {
		t.Fatalf("profile decoded as %T, not *values.ContainerValue", decodedProfile)
	}
	if profileContainer.ChildCount() != 2 {
		t.Fatalf("profile child count = %d, want 2", profileContainer.ChildCount())
	}

	displayName := profileContainer.GetChild("display_name", 0)
	if s, _ := displayName.ToString(); s != "ada" {
		t.Fatalf("display_name = %q", s)
	}

	decodedSettings := profileContainer.GetChild("settings", 0)
	settingsContainer, ok := decodedSettings.(*values.ContainerValue)
	if !ok {
		t.Fatalf("settings decoded as %T, not *values.ContainerValue", decodedSettings)
	}
	if settingsContainer.ChildCount() != 2 {
		t.Fatalf("settings child count = %d, want 2", settingsContainer.ChildCount())
	}
	darkMode := settingsContainer.GetChild("dark_mode", 0)
	if b, _ := darkMode.ToBool(); !b {
		t.Fatalf("dark_mode = false, want true")
	}
	fontSize := settingsContainer.GetChild("font_size", 0)
	if n, _ := fontSize.ToInt32(); n != 14 {
		t.Fatalf("font_size = %d, want 14", n)
	}
}

// Payloads with embedded whitespace exercise the escape map: the wire text
// must carry no raw CR/LF/space/tab inside a value entry, and the decoded
// payload must match the original byte for byte.
func TestEncodeDecodeWhitespacePayload(t *testing.T) {
	original := core.NewValueContainerWithType("note",
		values.NewStringValue("body", "line one\nline two\r\n\tindented, with spaces"),
	)

	wire, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dataStart := strings.Index(wire, "@data=")
	for _, c := range wire[dataStart:] {
		switch c {
		case '\r', '\n', ' ', '\t':
			t.Fatalf("wire data section carries raw whitespace: %q", wire)
		}
	}

	decoded, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	body := decoded.GetValue("body", 0)
	if s, _ := body.ToString(); s != "line one\nline two\r\n\tindented, with spaces" {
		t.Fatalf("body = %q", s)
	}
}

func TestEncodeDecodeEmptyContainerRoundTrip(t *testing.T) {
	empty := values.NewArrayValue("snipping_targets")
	original := core.NewValueContainerWithType("request_connection", empty)

	wire, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got := decoded.GetValue("snipping_targets", 0)
	if got == nil {
		t.Fatal("missing snipping_targets value")
	}
	container, ok := got.(*values.ContainerValue)
	if !ok {
		t.Fatalf("snipping_targets decoded as %T", got)
	}
	if container.ChildCount() != 0 {
		t.Fatalf("expected 0 children, got %d", container.ChildCount())
	}
}
