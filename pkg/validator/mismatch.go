// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package validator

import (
	"regexp"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/api2spec/schemareport/pkg/jsonv"
)

var quotedName = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'`)

type note struct {
	keyword string
	message string
}

// mismatches accumulates violations per instance location, keeping the
// order in which locations were first seen.
type mismatches struct {
	data jsonv.Value
	doc  jsonv.Value

	order   []string
	tokens  map[string][]string
	scalars map[string][]string
	notes   map[string][]note
	missing map[string][]string
	extras  map[string][]string
}

func buildMismatches(data, doc jsonv.Value, leaves []*jsonschema.ValidationError) jsonv.Value {
	m := &mismatches{
		data:    data,
		doc:     doc,
		tokens:  make(map[string][]string),
		scalars: make(map[string][]string),
		notes:   make(map[string][]note),
		missing: make(map[string][]string),
		extras:  make(map[string][]string),
	}
	for _, leaf := range leaves {
		m.add(leaf)
	}
	return m.apply()
}

func (m *mismatches) add(leaf *jsonschema.ValidationError) {
	tokens := decodeLocation(leaf.InstanceLocation)
	node, ok := m.data.At(tokens)
	if !ok {
		return
	}
	key := jsonv.FormatPointer(tokens)
	if _, seen := m.tokens[key]; !seen {
		m.tokens[key] = tokens
		m.order = append(m.order, key)
	}

	keyword := keywordOf(leaf.KeywordLocation)
	switch {
	case keyword == "required" && node.Kind() == jsonv.Object:
		m.missing[key] = appendUnique(m.missing[key], m.missingNames(leaf, node)...)
	case keyword == "additionalProperties" && node.Kind() == jsonv.Object:
		m.extras[key] = appendUnique(m.extras[key], m.extraNames(leaf, node)...)
	case node.Kind() == jsonv.Object || node.Kind() == jsonv.Array:
		m.notes[key] = append(m.notes[key], note{keyword: keyword, message: leaf.Message})
	default:
		m.scalars[key] = append(m.scalars[key], leaf.Message)
	}
}

func (m *mismatches) apply() jsonv.Value {
	tree := m.data

	for _, key := range m.order {
		msgs, ok := m.scalars[key]
		if !ok {
			continue
		}
		tokens := m.tokens[key]
		original, _ := m.data.At(tokens)
		tree = setAt(tree, tokens, jsonv.StringValue(ErrorMarker+" "+original.String()+" "+strings.Join(msgs, "; ")))
	}

	for _, key := range m.order {
		for _, name := range m.extras[key] {
			tokens := append(slices.Clone(m.tokens[key]), name)
			original, ok := m.data.At(tokens)
			if !ok {
				continue
			}
			tree = setAt(tree, tokens, jsonv.StringValue(ErrorMarker+" "+original.String()+" additional property not allowed"))
		}
	}

	for _, key := range m.order {
		notes := m.notes[key]
		if len(notes) == 0 {
			continue
		}
		tokens := m.tokens[key]
		node, ok := tree.At(tokens)
		if !ok {
			continue
		}
		for _, n := range notes {
			switch node.Kind() {
			case jsonv.Object:
				label := "(" + n.keyword + ")"
				text := ErrorMarker + " " + n.message
				if prev, ok := node.Lookup(label); ok {
					text = prev.Str() + "; " + n.message
				}
				node = node.With(label, jsonv.StringValue(text))
			case jsonv.Array:
				node = node.Append(jsonv.StringValue(ErrorMarker + " " + n.message))
			}
		}
		tree = setAt(tree, tokens, node)
	}

	for _, key := range m.order {
		names := m.missing[key]
		if len(names) == 0 {
			continue
		}
		tokens := m.tokens[key]
		node, ok := tree.At(tokens)
		if !ok || node.Kind() != jsonv.Object {
			continue
		}
		for _, name := range names {
			if !node.Has(name) {
				node = node.With(name, jsonv.StringValue(MissingMarker+" Missing property '"+name+"'"))
			}
		}
		tree = setAt(tree, tokens, node)
	}

	return tree
}

// missingNames lists the required properties absent from node, read from
// the schema document when possible and from the message otherwise.
func (m *mismatches) missingNames(leaf *jsonschema.ValidationError, node jsonv.Value) []string {
	if required, ok := m.schemaNode(leaf.AbsoluteKeywordLocation); ok && required.Kind() == jsonv.Array {
		var names []string
		for _, item := range required.Items() {
			if item.Kind() == jsonv.String && !node.Has(item.Str()) {
				names = append(names, item.Str())
			}
		}
		return names
	}
	return namesFromMessage(leaf.Message)
}

// extraNames lists the members of node not covered by the sibling
// properties and patternProperties keywords.
func (m *mismatches) extraNames(leaf *jsonschema.ValidationError, node jsonv.Value) []string {
	base, fragment := splitLocation(leaf.AbsoluteKeywordLocation)
	tokens := decodeLocation(fragment)
	if base != documentURL || len(tokens) == 0 {
		return m.presentNames(namesFromMessage(leaf.Message), node)
	}
	parent, ok := m.doc.At(tokens[:len(tokens)-1])
	if !ok || parent.Kind() != jsonv.Object {
		return m.presentNames(namesFromMessage(leaf.Message), node)
	}

	properties, _ := parent.Lookup("properties")
	var patterns []*regexp.Regexp
	if pp, ok := parent.Lookup("patternProperties"); ok {
		for _, p := range pp.Keys() {
			if re, err := regexp.Compile(p); err == nil {
				patterns = append(patterns, re)
			}
		}
	}

	var names []string
	for _, key := range node.Keys() {
		if properties.Has(key) {
			continue
		}
		if slices.ContainsFunc(patterns, func(re *regexp.Regexp) bool { return re.MatchString(key) }) {
			continue
		}
		names = append(names, key)
	}
	return names
}

// presentNames keeps the names that are members of node, in member order.
func (m *mismatches) presentNames(names []string, node jsonv.Value) []string {
	var out []string
	for _, key := range node.Keys() {
		if slices.Contains(names, key) {
			out = append(out, key)
		}
	}
	return out
}

func (m *mismatches) schemaNode(absoluteLocation string) (jsonv.Value, bool) {
	base, fragment := splitLocation(absoluteLocation)
	if base != documentURL {
		return jsonv.Value{}, false
	}
	return m.doc.At(decodeLocation(fragment))
}

func namesFromMessage(message string) []string {
	var names []string
	for _, match := range quotedName.FindAllStringSubmatch(message, -1) {
		names = append(names, strings.ReplaceAll(match[1], `\'`, `'`))
	}
	return names
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}

func setAt(tree jsonv.Value, tokens []string, v jsonv.Value) jsonv.Value {
	updated, err := tree.SetAt(tokens, v)
	if err != nil {
		return tree
	}
	return updated
}
