// Package sceneparser turns scene description source text into
// scenedesc.Graph operations: Declare/Define/DefineInternal calls plus
// plug-in dispatch checks, following the contract spec.md §4.2 and §6
// describe — a small S-expression-adjacent object-graph notation, not
// JSON, chosen the way the prose allows ("implementations may choose
// JSON or a bespoke syntax; the contract is identical").
//
// A source file is UTF-8 text containing zero or more import
// directives followed by named global node declarations and exactly
// one root node bound to the RootIdentifier sentinel. References use
// an '@identifier' sigil; inline nested objects become internal nodes
// owned by their enclosing node. import directives are parsed in
// parallel on a shared internal/parallel.WorkerPool, each import
// funnelling its declarations into the same scenedesc.Graph under that
// graph's own mutex, matching the concurrency guarantee scenedesc
// already provides for concurrent Declare/Define/Reference calls on
// distinct identifiers.
package sceneparser
