package binding

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// QueryProfile reads a value out of a serialized JSON profile using a
// gjson path, e.g. "contexts.#(name==view).bindings.#.action".
func QueryProfile(data []byte, path string) gjson.Result {
	return gjson.GetBytes(data, path)
}

// PatchBindingInput rewrites the input identifier of one binding inside a
// serialized JSON profile without re-marshaling the whole document. The
// binding is addressed by context name and action name; every binding for
// that action is rewritten, mirroring Context.Rebind.
func PatchBindingInput(data []byte, contextName, actionName, newInput string) ([]byte, error) {
	contexts := gjson.GetBytes(data, "contexts")
	if !contexts.Exists() {
		return nil, ErrBindingNotFound
	}

	patched := data
	found := false

	var outerErr error
	contexts.ForEach(func(ci, ctx gjson.Result) bool {
		if ctx.Get("name").String() != contextName {
			return true
		}

		ctx.Get("bindings").ForEach(func(bi, b gjson.Result) bool {
			if b.Get("action").String() != actionName {
				return true
			}

			path := fmt.Sprintf("contexts.%d.bindings.%d.input", ci.Int(), bi.Int())
			next, err := sjson.SetBytes(patched, path, newInput)
			if err != nil {
				outerErr = fmt.Errorf("patching %s: %w", path, err)
				return false
			}
			patched = next
			found = true
			return true
		})
		return outerErr == nil
	})

	if outerErr != nil {
		return nil, outerErr
	}
	if !found {
		return nil, ErrBindingNotFound
	}
	return patched, nil
}
