// Package format names the text formats documents are read and written in.
//
// # Related Packages
//
//   - github.com/signadot/ward/parse - Parse text to values
//   - github.com/signadot/ward/encode - Encode values to text
package format
