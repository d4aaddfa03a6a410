package mathfield

import (
	"sort"

	"github.com/vango-dev/mathfield/pkg/vdom"
)

// OptionKey enumerates the configuration options the widget accepts through
// SetOptions. The set is closed: anything else is a plain DOM prop.
type OptionKey uint8

const (
	OptCustomVirtualKeyboardLayers OptionKey = iota + 1
	OptCustomVirtualKeyboards
	OptDefaultMode
	OptFontsDirectory
	OptHorizontalSpacingScale
	OptIgnoreSpacebarInMathMode
	OptInlineShortcutTimeout
	OptInlineShortcuts
	OptKeybindings
	OptKeypressSound
	OptKeypressVibration
	OptLetterShapeStyle
	OptLocale
	OptMacros
	OptMathModeSpace
	OptPlonkSound
	OptReadOnly
	OptRegisters
	OptRemoveExtraneousParentheses
	OptScriptDepth
	OptSharedVirtualKeyboardTargetOrigin
	OptSmartFence
	OptSmartMode
	OptSmartSuperscript
	OptSoundsDirectory
	OptSpeechEngine
	OptSpeechEngineRate
	OptSpeechEngineVoice
	OptStrings
	OptTextToSpeechMarkup
	OptTextToSpeechRules
	OptTextToSpeechRulesOptions
	OptUseSharedVirtualKeyboard
	OptVirtualKeyboardContainer
	OptVirtualKeyboardLayout
	OptVirtualKeyboardMode
	OptVirtualKeyboardTheme
	OptVirtualKeyboardToggleGlyph
	OptVirtualKeyboards

	optionCount = iota + 1
)

var optionNames = [optionCount]string{
	"",
	"customVirtualKeyboardLayers",
	"customVirtualKeyboards",
	"defaultMode",
	"fontsDirectory",
	"horizontalSpacingScale",
	"ignoreSpacebarInMathMode",
	"inlineShortcutTimeout",
	"inlineShortcuts",
	"keybindings",
	"keypressSound",
	"keypressVibration",
	"letterShapeStyle",
	"locale",
	"macros",
	"mathModeSpace",
	"plonkSound",
	"readOnly",
	"registers",
	"removeExtraneousParentheses",
	"scriptDepth",
	"sharedVirtualKeyboardTargetOrigin",
	"smartFence",
	"smartMode",
	"smartSuperscript",
	"soundsDirectory",
	"speechEngine",
	"speechEngineRate",
	"speechEngineVoice",
	"strings",
	"textToSpeechMarkup",
	"textToSpeechRules",
	"textToSpeechRulesOptions",
	"useSharedVirtualKeyboard",
	"virtualKeyboardContainer",
	"virtualKeyboardLayout",
	"virtualKeyboardMode",
	"virtualKeyboardTheme",
	"virtualKeyboardToggleGlyph",
	"virtualKeyboards",
}

var optionsByName = func() map[string]OptionKey {
	m := make(map[string]OptionKey, optionCount-1)
	for k := OptionKey(1); k < optionCount; k++ {
		m[optionNames[k]] = k
	}
	return m
}()

// String returns the option name as the widget spells it.
func (k OptionKey) String() string {
	if k == 0 || int(k) >= optionCount {
		return ""
	}
	return optionNames[k]
}

// Valid reports whether k is one of the enumerated options.
func (k OptionKey) Valid() bool {
	return k > 0 && int(k) < optionCount
}

// LookupOption returns the option for a (normalized) prop name.
func LookupOption(name string) (OptionKey, bool) {
	k, ok := optionsByName[name]
	return k, ok
}

// AllOptions returns every option key in declaration order.
func AllOptions() []OptionKey {
	out := make([]OptionKey, 0, optionCount-1)
	for k := OptionKey(1); k < optionCount; k++ {
		out = append(out, k)
	}
	return out
}

// Options is the configuration object pushed into the widget. Keys are
// always OptionKey names.
type Options map[string]any

// Set stores value under k. Invalid keys are ignored.
func (o Options) Set(k OptionKey, value any) {
	if k.Valid() {
		o[k.String()] = value
	}
}

// Get returns the value stored under k.
func (o Options) Get(k OptionKey) (any, bool) {
	v, ok := o[k.String()]
	return v, ok
}

// Keys returns the option names present, sorted.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Option builds a prop for k, for use as an argument to vdom.El or in a
// Props literal.
func Option(k OptionKey, value any) vdom.Attr {
	return vdom.Attr{Key: k.String(), Value: value}
}

// ReadOnly sets the readOnly option.
func ReadOnly(readOnly bool) vdom.Attr { return Option(OptReadOnly, readOnly) }

// DefaultMode sets the initial parsing mode ("math", "text" or "latex").
func DefaultMode(mode string) vdom.Attr { return Option(OptDefaultMode, mode) }

// VirtualKeyboardMode sets when the virtual keyboard is shown
// ("auto", "manual", "onfocus" or "off").
func VirtualKeyboardMode(mode string) vdom.Attr { return Option(OptVirtualKeyboardMode, mode) }

// VirtualKeyboardToggleGlyph sets the toggle glyph. glyph may be a string or
// a markup fragment; fragments are rendered to HTML before being forwarded.
func VirtualKeyboardToggleGlyph(glyph any) vdom.Attr {
	return Option(OptVirtualKeyboardToggleGlyph, glyph)
}

// SmartFence toggles automatic fence pairing.
func SmartFence(on bool) vdom.Attr { return Option(OptSmartFence, on) }

// SmartMode toggles automatic switching between math and text mode.
func SmartMode(on bool) vdom.Attr { return Option(OptSmartMode, on) }

// LetterShapeStyle sets the italicization convention ("tex", "iso", "french", "upright").
func LetterShapeStyle(style string) vdom.Attr { return Option(OptLetterShapeStyle, style) }

// Locale sets the UI locale.
func Locale(locale string) vdom.Attr { return Option(OptLocale, locale) }

// Macros sets the LaTeX macro table.
func Macros(macros map[string]string) vdom.Attr { return Option(OptMacros, macros) }
