// Package ops defines the edit operations mkvsmith compiles into tool
// invocations and the rules for resolving an ordered queue of them.
//
// Operations reference tracks of the primary input by global index. Resolve
// folds a Queue into an Intent with at most one value per key and at most one
// default target per track type; the remux package consumes only Intents.
package ops
