// Package sceneprops provides the small property-reading helpers the
// texture, surface, and light plug-in factories share when pulling
// typed defaults off a *scenedesc.Node, the Go analogue of the
// original's SceneNodeDesc::property_float_or_default family.
package sceneprops

import "github.com/gogpu/photon/scenedesc"

// Float reads a single-valued number property, or def if absent.
func Float(node *scenedesc.Node, name string, def float64) float64 {
	p, ok := node.Property(name)
	if !ok || p.Kind != scenedesc.KindNumber || len(p.Numbers) == 0 {
		return def
	}
	return p.Numbers[0]
}

// Bool reads a single-valued bool property, or def if absent.
func Bool(node *scenedesc.Node, name string, def bool) bool {
	p, ok := node.Property(name)
	if !ok || p.Kind != scenedesc.KindBool || len(p.Bools) == 0 {
		return def
	}
	return p.Bools[0]
}

// RGB reads a 3-number property, falling back to def. A single-number
// property is broadcast to all three channels, matching
// parse_float3_or_default(parse_float()) in point_light.cpp.
func RGB(node *scenedesc.Node, name string, def [3]float64) [3]float64 {
	p, ok := node.Property(name)
	if !ok || p.Kind != scenedesc.KindNumber || len(p.Numbers) == 0 {
		return def
	}
	if len(p.Numbers) == 1 {
		return [3]float64{p.Numbers[0], p.Numbers[0], p.Numbers[0]}
	}
	var out [3]float64
	for i := 0; i < 3 && i < len(p.Numbers); i++ {
		out[i] = p.Numbers[i]
	}
	return out
}

// NodeRef reads a single node-reference property.
func NodeRef(node *scenedesc.Node, name string) (*scenedesc.Node, bool) {
	p, ok := node.Property(name)
	if !ok || p.Kind != scenedesc.KindNode || len(p.Nodes) == 0 {
		return nil, false
	}
	return p.Nodes[0], true
}
