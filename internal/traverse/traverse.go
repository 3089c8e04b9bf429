package traverse

import "strings"

// Traverse returns the first value reached by following keys through n.
//
// Each key is searched for at any depth below the matches of the previous key.
// The search is depth-first and pre-order: at a mapping the node's own key is
// checked before its children are descended, and children are visited in
// document order. Sequences and mappings are both descended.
//
// The boolean is false when some key matched nothing. A found empty sequence
// is reported as found.
func Traverse(n Node, keys ...string) (Node, bool) {
	matches := collect(n, keys)
	if len(matches) == 0 {
		return Node{}, false
	}
	return matches[0], true
}

// TraverseList returns every value matched by the final key, in document
// order. A matched sequence contributes its items rather than itself.
// Returns an empty slice when nothing matches.
func TraverseList(n Node, keys ...string) []Node {
	matches := collect(n, keys)
	out := make([]Node, 0, len(matches))
	for _, m := range matches {
		if m.kind == KindSequence {
			out = append(out, m.items...)
			continue
		}
		out = append(out, m)
	}
	return out
}

// TraverseString joins the text of one rich-text structure, e.g.
// TraverseString(n, "title", "runs", "text"). All keys but the last are
// resolved to their first match, as Traverse does; the last key is then
// collected across that single structure. Missing keys give "".
func TraverseString(n Node, keys ...string) string {
	if len(keys) == 0 {
		s, _ := n.Str()
		return s
	}

	base := n
	if len(keys) > 1 {
		var ok bool
		if base, ok = Traverse(n, keys[:len(keys)-1]...); !ok {
			return ""
		}
	}

	var sb strings.Builder
	for _, m := range TraverseList(base, keys[len(keys)-1]) {
		if s, ok := m.Str(); ok {
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func collect(n Node, keys []string) []Node {
	if !n.Exists() {
		return nil
	}
	if len(keys) == 0 {
		return []Node{n}
	}

	current := []Node{n}
	for i, key := range keys {
		last := i == len(keys)-1
		var next []Node
		for _, c := range current {
			next = search(c, key, last, 0, next)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// search appends the values under key found in n's subtree.
// A match on the final key is a dead end: nothing below that mapping is
// searched. For intermediate keys the matched value itself is not searched,
// since the next key is looked up inside it anyway.
func search(n Node, key string, last bool, depth int, out []Node) []Node {
	if depth > MaxDepth {
		return out
	}

	switch n.kind {
	case KindMapping:
		matched := -1
		for i, f := range n.fields {
			if f.Key == key {
				out = append(out, f.Value)
				matched = i
				break
			}
		}
		if matched >= 0 && last {
			return out
		}
		for i, f := range n.fields {
			if i == matched {
				continue
			}
			out = search(f.Value, key, last, depth+1, out)
		}
	case KindSequence:
		for _, it := range n.items {
			out = search(it, key, last, depth+1, out)
		}
	}
	return out
}
