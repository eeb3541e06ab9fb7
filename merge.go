// File: treeline/config/merge.go
package config

import "reflect"

// merge recursively merges source into target in place and returns the
// absolute paths that changed, each prefixed with branch.
//
// When a key holds a mapping on both sides the two are merged key by
// key; in every other case (key absent in target, type mismatch, or a
// leaf on either side) the target value is overwritten with a deep copy
// of the source value and the full path of the overwritten key is
// recorded. A scalar overwriting a mapping, or the reverse, discards
// the old subtree entirely. Overwrites with an equal value are skipped
// and not recorded, so merging a tree into itself reports no changes.
func merge(target, source Tree, branch string) []string {
	var changed []string
	for key, value := range source {
		path := joinPath(branch, key)
		srcMap, srcIsMap := value.(Tree)
		dstMap, dstIsMap := target[key].(Tree)
		if srcIsMap && dstIsMap {
			changed = append(changed, merge(dstMap, srcMap, path)...)
			continue
		}
		if existing, ok := target[key]; ok && reflect.DeepEqual(existing, value) {
			continue
		}
		target[key] = deepCopyValue(value)
		changed = append(changed, path)
	}
	return changed
}
