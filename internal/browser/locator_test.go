package browser

import (
	"errors"
	"strings"
	"testing"
)

func TestLocator_String(t *testing.T) {
	tests := []struct {
		name string
		loc  Locator
		want string
	}{
		{"css", ByCSS(`div[role="dialog"]`), `div[role="dialog"]`},
		{"role", ByRole("button", "MULTIPLAYER"), `role=button[name="MULTIPLAYER"]`},
		{"text", ByText("AVAILABLE OPERATIONS"), `text="AVAILABLE OPERATIONS"`},
		{"id", ByID("create-room-title"), `[id="create-room-title"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestByID_EscapesSelector(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"plain", "create-room-title", `[id="create-room-title"]`},
		{"tab", "a\tb", `[id="a\9 b"]`},
		{"newline before hex digit", "x\nf", `[id="x\a f"]`},
		{"quote", `say"hi`, `[id="say\"hi"]`},
		{"backslash", `a\b`, `[id="a\\b"]`},
		{"null", "a\x00b", "[id=\"a\uFFFDb\"]"},
		{"non-ascii kept", "sala-é", `[id="sala-é"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ByID(tt.id).String(); got != tt.want {
				t.Errorf("ByID(%q) = %s, want %s", tt.id, got, tt.want)
			}
		})
	}
}

func TestRoleCSS(t *testing.T) {
	if got := roleCSS("button"); !strings.Contains(got, `[role="button"]`) || !strings.HasPrefix(got, "button") {
		t.Errorf("button role should cover native buttons and role attribute, got %s", got)
	}
	if got := roleCSS("dialog"); !strings.Contains(got, `[role="dialog"]`) {
		t.Errorf("dialog role should include role attribute, got %s", got)
	}
	if got := roleCSS("tabpanel"); got != `[role="tabpanel"]` {
		t.Errorf("unknown roles should fall back to the role attribute, got %s", got)
	}
}

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `"plain"`},
		{`say "hi"`, `'say "hi"'`},
		{`it's "x"`, `concat("it's ", '"', "x", '"', "")`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := xpathLiteral(tt.in); got != tt.want {
				t.Errorf("xpathLiteral(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextXPath(t *testing.T) {
	xp := textXPath("Create a room")

	if !strings.Contains(xp, `"create a room"`) {
		t.Errorf("expected lower-cased needle in %s", xp)
	}
	if !strings.HasPrefix(xp, "//body//*") {
		t.Errorf("expected search scoped to body, got %s", xp)
	}
	if !strings.Contains(xp, "not(self::script or self::style)") {
		t.Errorf("expected script and style to be excluded, got %s", xp)
	}
}

func TestNewDriver(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{"playwright", "playwright", false},
		{"rod", "rod", false},
		{"selenium", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDriver(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDriver) {
					t.Errorf("expected ErrUnknownDriver, got %v", err)
				}
				if d != nil {
					t.Error("expected nil driver on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Name() != tt.wantName {
				t.Errorf("Name() = %s, want %s", d.Name(), tt.wantName)
			}
		})
	}
}
