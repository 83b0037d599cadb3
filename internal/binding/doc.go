// Package binding is the starter binding compiler.
//
// For one target type it
//   - classifies every `arg` field into a marshaling Kind (a fixed set of
//     primitive kinds plus two capability kinds decided by an Oracle),
//   - resolves how generated code writes the field back (AccessDecision),
//   - enumerates the overload Variants needed for optional fields,
//   - names the generated routines and rejects name collisions.
//
// Compile either returns a complete Binding or a *FieldError; there is no
// partial result. CompileAll runs Compile over independent targets in
// parallel and reports failures to a diagnostic.Sink.
package binding
