package variants

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-composer/blocks"
)

func splitPath(path string) ([]string, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), ".")
	if trimmed == "" {
		return nil, ErrPathRequired
	}
	segments := strings.Split(trimmed, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrPathRequired, path)
		}
	}
	return segments, nil
}

// setPath returns a copy of data with value stored at segments. Only the
// maps along the path are copied; siblings are shared with the input.
func setPath(data blocks.Data, segments []string, value any) (blocks.Data, error) {
	out := make(blocks.Data, len(data)+1)
	for key, existing := range data {
		out[key] = existing
	}

	head := segments[0]
	if len(segments) == 1 {
		out[head] = value
		return out, nil
	}

	var child blocks.Data
	switch typed := out[head].(type) {
	case nil:
		child = blocks.Data{}
	case map[string]any:
		child = typed
	default:
		return nil, fmt.Errorf("%w: %s", ErrPathConflict, head)
	}

	updated, err := setPath(child, segments[1:], value)
	if err != nil {
		return nil, err
	}
	out[head] = updated
	return out, nil
}

// GetPath reads the value at a dot-separated path.
func GetPath(data blocks.Data, path string) (any, bool) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	var current any = data
	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = node[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}
