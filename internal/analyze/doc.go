// Package analyze provides package loading and target discovery.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// starter targets: named struct types whose fields carry an `arg` struct tag,
// or that are marked with a //starter:target directive.
//
// Key types:
//   - TypeID: package import path + type name
//   - TargetDescriptor: one target type and its argument fields
//   - ArgField: one `arg` field with its parsed tag options
//   - Hierarchy: supertype edges and interface lookup over the loaded program
package analyze
