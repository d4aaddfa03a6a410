//go:build js && wasm

package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/vango-dev/mathfield/pkg/dom"
)

func fromJS(native js.Value) *dom.Event {
	ev := dom.NewCustomEvent(native.Get("type").String(), dom.EventInit{
		Bubbles:    native.Get("bubbles").Bool(),
		Cancelable: native.Get("cancelable").Bool(),
		Detail:     toGo(native.Get("detail")),
	})
	ev.Native = native
	return ev
}

// toGo converts plain JS data to Go values. DOM nodes and other host
// objects are returned as js.Value.
func toGo(v js.Value) any {
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return nil
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNumber:
		return v.Float()
	case js.TypeString:
		return v.String()
	case js.TypeObject:
		if js.Global().Get("Array").Call("isArray", v).Bool() {
			out := make([]any, v.Length())
			for i := range out {
				out[i] = toGo(v.Index(i))
			}
			return out
		}
		proto := js.Global().Get("Object").Call("getPrototypeOf", v)
		if !proto.IsNull() && !proto.Equal(js.Global().Get("Object").Get("prototype")) {
			return v
		}
		keys := js.Global().Get("Object").Call("keys", v)
		out := make(map[string]any, keys.Length())
		for i := 0; i < keys.Length(); i++ {
			k := keys.Index(i).String()
			out[k] = toGo(v.Get(k))
		}
		return out
	}
	return v
}

// toJS converts Go data to a value js.ValueOf accepts.
func toJS(v any) any {
	switch x := v.(type) {
	case nil, bool, string, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64, js.Value, js.Func:
		return x
	case *Element:
		return x.v
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = toJS(val)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = val
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = toJS(val)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = val
		}
		return out
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
