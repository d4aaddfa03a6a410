package errors

import (
	stderrors "errors"
	"io/fs"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("E102")
	if err.Category != CategoryConfig {
		t.Errorf("Category = %v, want %v", err.Category, CategoryConfig)
	}
	if err.Message != "Invalid config value" {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.HasSuffix(err.DocURL, "#e102") {
		t.Errorf("DocURL = %q", err.DocURL)
	}
	if got := err.Error(); got != "E102: Invalid config value" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Message != "Unknown error" || err.Code != "E999" {
		t.Errorf("got %+v", err)
	}
}

func TestWrapAndIs(t *testing.T) {
	err := New("E100").Wrap(fs.ErrNotExist)

	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped cause")
	}
	if !stderrors.Is(err, New("E100")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New("E101")) {
		t.Error("different codes must not match")
	}
	var target *Error
	if !stderrors.As(err, &target) || target.Code != "E100" {
		t.Error("errors.As failed")
	}
	if !strings.Contains(err.Error(), "file does not exist") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E100") != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New("E200")
	if FromError(orig, "E100") != orig {
		t.Error("FromError should pass *Error through")
	}
	wrapped := FromError(stderrors.New("boom"), "E301")
	if wrapped.Code != "E301" || wrapped.Wrapped == nil {
		t.Errorf("got %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E102").
		WithDetailf("port must be between 1 and 65535, got %d", 0).
		WithSuggestion("Set server.port").
		Wrap(stderrors.New("range"))

	out := err.Format()
	for _, want := range []string{"ERROR E102: Invalid config value", "got 0", "Cause: range", "Hint: Set server.port", "Learn more:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors should be disabled")
	}
}

func TestFormatJSON(t *testing.T) {
	got := New("E401").FormatJSON()
	for _, want := range []string{`"code":"E401"`, `"category":"protocol"`, `"message":"Unknown field"`} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatJSON() = %s, missing %s", got, want)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than 10", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("lines = %v", lines)
	}
}

func TestRegistry(t *testing.T) {
	for _, code := range Codes() {
		tmpl, ok := Lookup(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template %+v", code, tmpl)
		}
	}
	if got := CodesByCategory(CategoryAssets); len(got) != 3 {
		t.Errorf("asset codes = %v, want 3", got)
	}
	Register("E599", ErrorTemplate{Category: CategoryCLI, Message: "test"})
	if New("E599").Message != "test" {
		t.Error("Register did not take effect")
	}
	delete(registry, "E599")
}
