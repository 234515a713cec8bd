// Package flatten turns nested JSON objects into dotted-path → scalar maps.
// It ships two traversal strategies, depth-first and breadth-first, which by
// construction yield identical mappings; the chat command returns both side
// by side so clients can compare them.
package flatten

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Parse validates that input is a JSON object and returns it for traversal.
func Parse(input string) (gjson.Result, error) {
	if !gjson.Valid(input) {
		return gjson.Result{}, fmt.Errorf("invalid JSON")
	}
	parsed := gjson.Parse(input)
	if !parsed.IsObject() {
		return gjson.Result{}, fmt.Errorf("input must be a JSON object")
	}
	return parsed, nil
}

// DFS flattens obj by depth-first descent. Nested objects contribute
// dotted-path keys; arrays and every other value are kept as opaque scalars.
func DFS(obj gjson.Result) map[string]interface{} {
	out := make(map[string]interface{})
	dfsInto(obj, "", out)
	return out
}

func dfsInto(obj gjson.Result, parent string, out map[string]interface{}) {
	obj.ForEach(func(key, value gjson.Result) bool {
		path := key.String()
		if parent != "" {
			path = parent + "." + path
		}
		if value.IsObject() {
			dfsInto(value, path, out)
		} else {
			out[path] = value.Value()
		}
		return true
	})
}

// BFS flattens obj level by level. The resulting mapping always equals the
// DFS one; only the visit order differs.
func BFS(obj gjson.Result) map[string]interface{} {
	out := make(map[string]interface{})

	type item struct {
		node   gjson.Result
		parent string
	}
	queue := []item{{node: obj}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		current.node.ForEach(func(key, value gjson.Result) bool {
			path := key.String()
			if current.parent != "" {
				path = current.parent + "." + path
			}
			if value.IsObject() {
				queue = append(queue, item{node: value, parent: path})
			} else {
				out[path] = value.Value()
			}
			return true
		})
	}

	return out
}
