// Package kpath parses and prints kinded paths such as "user.friends[0]".
//
// A kinded path is a chain of segments. A field segment ".name" addresses an
// object field, an index segment "[n]" addresses an array element. The
// wildcards ".*" and "[*]" match every field or every element. Fields which
// contain path syntax are single quoted.
package kpath
