// Package diagnostic collects fatal and advisory messages produced while
// compiling starter bindings.
//
// Every failing target yields exactly one error diagnostic naming the target,
// the offending field, and the violated contract. Infos record targets that
// were generated successfully.
package diagnostic
