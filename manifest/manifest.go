// Package manifest reads and rewrites the documentation site's navigation
// manifest. Only the page lists of matching groups are replaced; every other
// byte of the document keeps its content and key order.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/grovetools/catalogdocs/catalog"
)

// Kind discriminates navigation nodes.
type Kind int

const (
	// KindPage is a leaf page reference.
	KindPage Kind = iota
	// KindGroup is an object that may hold nested pages, groups or tabs.
	KindGroup
)

// childKeys are the arrays traversed below a group, in document order of preference.
var childKeys = []string{"tabs", "anchors", "groups", "pages"}

// Node is a single navigation entry.
type Node struct {
	Kind Kind
	// Ref is the page reference of a KindPage node.
	Ref string
	// Label is the "group" label of a KindGroup node.
	Label string
	// HasPages reports whether the group carries a "pages" array.
	HasPages bool
	Children []*Node
	// Path is the key path of the node within the raw document.
	Path []string
}

// Document is a parsed navigation manifest.
type Document struct {
	raw  []byte
	Root *Node
}

// PageRefs returns "<namespace>/<table>" for every table in navigation order.
func PageRefs(cat *catalog.Catalog, namespace string) []string {
	namespace = strings.TrimSuffix(namespace, "/")
	tables := cat.Sorted()
	refs := make([]string, 0, len(tables))
	for _, t := range tables {
		refs = append(refs, namespace+"/"+t.Name)
	}
	return refs
}

// Parse decodes a manifest. A document without a "navigation" object parses
// into an empty root.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("manifest is not valid JSON")
	}

	d := &Document{raw: bytes.Clone(data)}
	root, err := d.buildRoot()
	if err != nil {
		return nil, err
	}
	d.Root = root
	return d, nil
}

func (d *Document) buildRoot() (*Node, error) {
	root := &Node{Kind: KindGroup, Path: []string{"navigation"}}

	value, dataType, _, err := jsonparser.Get(d.raw, "navigation")
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, fmt.Errorf("read navigation: %w", err)
	}
	if dataType != jsonparser.Object {
		return root, nil
	}

	if err := buildChildren(root, value); err != nil {
		return nil, err
	}
	return root, nil
}

func buildChildren(parent *Node, value []byte) error {
	for _, key := range childKeys {
		_, dataType, _, err := jsonparser.Get(value, key)
		if err != nil || dataType != jsonparser.Array {
			continue
		}

		if key == "pages" {
			parent.HasPages = true
		}

		idx := 0
		var walkErr error
		_, err = jsonparser.ArrayEach(value, func(elem []byte, elemType jsonparser.ValueType, _ int, err error) {
			if walkErr != nil {
				return
			}
			if err != nil {
				walkErr = err
				return
			}

			path := childPath(parent.Path, key, idx)
			idx++

			switch elemType {
			case jsonparser.String:
				ref, err := jsonparser.ParseString(elem)
				if err != nil {
					walkErr = fmt.Errorf("decode page reference at %s: %w", strings.Join(path, "."), err)
					return
				}
				parent.Children = append(parent.Children, &Node{Kind: KindPage, Ref: ref, Path: path})
			case jsonparser.Object:
				label, _ := jsonparser.GetString(elem, "group")
				child := &Node{Kind: KindGroup, Label: label, Path: path}
				if err := buildChildren(child, elem); err != nil {
					walkErr = err
					return
				}
				parent.Children = append(parent.Children, child)
			}
		}, key)
		if walkErr != nil {
			return walkErr
		}
		if err != nil {
			return fmt.Errorf("walk %s: %w", strings.Join(append(parent.Path, key), "."), err)
		}
	}
	return nil
}

func childPath(parent []string, key string, idx int) []string {
	path := make([]string, 0, len(parent)+2)
	path = append(path, parent...)
	return append(path, key, fmt.Sprintf("[%d]", idx))
}

// Walk visits nodes depth-first. Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindGroups returns every group labelled label that carries a page list.
// Matched groups are not searched further.
func (d *Document) FindGroups(label string) []*Node {
	var matches []*Node
	d.Root.Walk(func(n *Node) bool {
		if n.Kind == KindGroup && n.HasPages && n.Label == label && n != d.Root {
			matches = append(matches, n)
			return false
		}
		return true
	})
	return matches
}

// ReplacePages replaces the page list of every group labelled label and
// returns the number of groups updated.
func (d *Document) ReplacePages(label string, pages []string) (int, error) {
	matches := d.FindGroups(label)
	if len(matches) == 0 {
		return 0, nil
	}

	if pages == nil {
		pages = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(pages); err != nil {
		return 0, fmt.Errorf("encode pages: %w", err)
	}
	value := bytes.TrimSpace(buf.Bytes())

	raw := d.raw
	for _, n := range matches {
		keys := append(append([]string{}, n.Path...), "pages")
		updated, err := jsonparser.Set(bytes.Clone(raw), value, keys...)
		if err != nil {
			return 0, fmt.Errorf("set pages at %s: %w", strings.Join(keys, "."), err)
		}
		raw = updated
	}

	d.raw = raw
	root, err := d.buildRoot()
	if err != nil {
		return 0, err
	}
	d.Root = root
	return len(matches), nil
}

// AllPageRefs returns every page reference in the navigation tree, in
// document order.
func (d *Document) AllPageRefs() []string {
	var refs []string
	d.Root.Walk(func(n *Node) bool {
		if n.Kind == KindPage {
			refs = append(refs, n.Ref)
		}
		return true
	})
	return refs
}

// Bytes renders the document with two-space indentation and a trailing newline.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, d.raw, "", "  "); err != nil {
		return nil, fmt.Errorf("format manifest: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
