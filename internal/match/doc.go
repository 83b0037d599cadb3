// Package match finds near-miss spellings so diagnostics can say
// "did you mean ...".
//
//   - Distance: rune-wise edit distance
//   - Closest: the best candidate within a length-scaled distance
package match
