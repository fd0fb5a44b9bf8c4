// Package preflight provides readiness checks for the external tools and
// filesystem paths mkvsmith depends on.
//
// These checks run in two contexts:
//   - The batch command calls RunAll before walking the tree so a missing
//     multiplexer or an unwritable root stops the run before any file is touched.
//   - The CLI "mkvsmith check" command displays every result.
package preflight
