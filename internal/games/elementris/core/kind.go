// Package core provides the core game logic for Elementris.
// This package is UI-agnostic and deterministic given its random source.
package core

import "strings"

// Kind identifies the type of a block.
type Kind uint8

const (
	KindEmpty Kind = iota // No block; never placed on the grid
	KindDirt
	KindShrub
	KindFire
	KindBurningShrub
	kindCount // Sentinel value for iteration
)

// Rule describes how a block kind behaves.
type Rule struct {
	Name      string
	Code      rune   // Single-letter code used by layouts
	Tag       string // Presentation tag for renderers
	Spawnable bool   // Can appear as a falling piece
	Ignites   bool   // Acts as an ignition source during propagation
	BurnsInto Kind   // Kind this block turns into when reached by fire; KindEmpty if not flammable
	Collapses bool   // Destroyed during collapse
}

// catalog is indexed by Kind.
var catalog = [kindCount]Rule{
	KindEmpty:        {Name: "empty", Code: '.'},
	KindDirt:         {Name: "dirt", Code: 'D', Tag: "dirt", Spawnable: true},
	KindShrub:        {Name: "shrub", Code: 'S', Tag: "shrub", Spawnable: true, BurnsInto: KindBurningShrub},
	KindFire:         {Name: "fire", Code: 'F', Tag: "fire", Spawnable: true, Ignites: true},
	KindBurningShrub: {Name: "burning_shrub", Code: 'B', Tag: "burning_shrub", Collapses: true},
}

// spawnable is derived once from the catalog, in catalog order.
var spawnable = func() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := range kindCount {
		if catalog[k].Spawnable {
			kinds = append(kinds, k)
		}
	}
	return kinds
}()

// RuleFor returns the rule for a kind. Unknown kinds behave like KindEmpty.
func RuleFor(k Kind) Rule {
	if k >= kindCount {
		return catalog[KindEmpty]
	}
	return catalog[k]
}

// SpawnableKinds returns the kinds that may be spawned as falling pieces.
func SpawnableKinds() []Kind {
	out := make([]Kind, len(spawnable))
	copy(out, spawnable)
	return out
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return catalog[k].Name
}

// Tag returns the presentation tag of the kind.
func (k Kind) Tag() string {
	return RuleFor(k).Tag
}

// Code returns the single-letter layout code of the kind.
func (k Kind) Code() rune {
	return RuleFor(k).Code
}

// ParseKind parses a kind from its name or single-letter code (case-insensitive).
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := range kindCount {
		rule := catalog[k]
		if s == rule.Name || s == strings.ToLower(string(rule.Code)) {
			return k, true
		}
	}
	switch s {
	case "burning", "burning-shrub":
		return KindBurningShrub, true
	}
	return KindEmpty, false
}
