// Package encode writes canonical values as JSON or YAML text, optionally
// colorized.
//
// # Usage
//
//	err := encode.Encode(h.Get(), os.Stdout)
//	err := encode.Encode(v, w, encode.EncodeFormat(format.JSONFormat))
//	err := encode.Encode(v, w, encode.EncodeColors(encode.NewColors()))
//
// Object keys are written in sorted order.
//
// # Related Packages
//
//   - github.com/signadot/ward/parse - Parse text to values
package encode
