// Package textutil sanitizes user-supplied strings for use in derived file
// names: container titles become output names, batch roots become lock file
// tokens.
package textutil
