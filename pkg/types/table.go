// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for translation-compare:
// engines, images, boxes, the translation table, and run configuration.
package types

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// BoxKey identifies one text box across engines: the image it belongs to and
// its zero-based position in that image's box list. The same key must refer
// to the same sentence in every engine's file.
type BoxKey struct {
	Image string `json:"image" yaml:"image"`
	Index int    `json:"index" yaml:"index"`
}

// Box is a translatable text unit inside an image.
type Box struct {
	// Index is the zero-based position within the image.
	Index int `json:"index" yaml:"index"`

	// Original is the source text of the first engine file that supplied
	// this position.
	Original string `json:"original" yaml:"original"`
}

// Key returns the BoxKey of b inside image.
func (b Box) Key(image string) BoxKey {
	return BoxKey{Image: image, Index: b.Index}
}

// Image is a named page with an ordered sequence of boxes.
type Image struct {
	Name  string `json:"name" yaml:"name"`
	Boxes []Box  `json:"boxes" yaml:"boxes"`
}

// Engine is a named source of translations: a machine translation system or
// a human reference.
type Engine struct {
	// Name is the translation file's base name without extension.
	Name string

	// Reference is true when Name carries the reference prefix.
	Reference bool

	// Translations maps each box this engine supplied to its translated
	// text. A box present with an empty target maps to "".
	Translations map[BoxKey]string

	// BoxCounts records how many boxes the engine listed per image.
	BoxCounts map[string]int
}

// Lookup returns the engine's translation for key and whether the engine
// supplied that box at all.
func (e *Engine) Lookup(key BoxKey) (string, bool) {
	text, ok := e.Translations[key]
	return text, ok
}

// Text returns the translation for key, or "" when the engine has none.
func (e *Engine) Text(key BoxKey) string {
	return e.Translations[key]
}

// Table is the aligned view of every engine's translations for one
// directory. It is built once by the collector and treated as read-only
// afterwards.
type Table struct {
	// Engines lists engines in file order.
	Engines []*Engine

	// Images holds images in first-seen order.
	Images *orderedmap.OrderedMap[string, *Image]
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{Images: orderedmap.New[string, *Image]()}
}

// References returns the reference engines in file order.
func (t *Table) References() []*Engine {
	var refs []*Engine
	for _, e := range t.Engines {
		if e.Reference {
			refs = append(refs, e)
		}
	}
	return refs
}

// Image returns the named image, or nil.
func (t *Table) Image(name string) *Image {
	img, _ := t.Images.Get(name)
	return img
}

// ImageList returns the images in first-seen order.
func (t *Table) ImageList() []*Image {
	list := make([]*Image, 0, t.Images.Len())
	for pair := t.Images.Oldest(); pair != nil; pair = pair.Next() {
		list = append(list, pair.Value)
	}
	return list
}
