package ldconfig

import "strings"

// LDPlayer stores its config files as flat JSON objects whose keys are
// dot-separated paths ("basicSettings.verticalSync": false). The typed
// records in this package are nested, so reads expand the dots and
// writes flatten them back.

// ExpandDotted converts a flat map with dotted keys into nested maps.
// Undotted keys are copied as-is. When a prefix collides with a scalar
// value, the later nested assignment wins.
func ExpandDotted(flat map[string]any) map[string]any {
	nested := make(map[string]any, len(flat))
	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := nested
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return nested
}

// FlattenDotted converts nested maps back into a flat map with dotted
// keys. Non-map values (including arrays) are leaves.
func FlattenDotted(nested map[string]any) map[string]any {
	flat := make(map[string]any, len(nested))
	flattenInto(flat, "", nested)
	return flat
}

func flattenInto(flat map[string]any, prefix string, node map[string]any) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if child, ok := value.(map[string]any); ok && len(child) > 0 {
			flattenInto(flat, full, child)
			continue
		}
		flat[full] = value
	}
}
