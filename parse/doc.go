// Package parse reads JSON and YAML documents into canonical values, as
// produced by ir.Canon, ready to be wrapped.
//
// # Usage
//
//	v, err := parse.Parse(data)                    // YAML, which includes JSON
//	v, err := parse.Parse(data, parse.ParseJSON()) // strict JSON
//
//	dec := parse.NewDecoder(r)
//	for {
//		v, err := dec.Decode()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
package parse
