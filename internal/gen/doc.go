// Package gen renders compiled starter bindings to Go source.
//
// Code is built with github.com/dave/jennifer/jen and formatted with
// go/format. Each binding becomes one file, <binding_name>.go, holding:
//   - Fill<Target>(t, m): presence-guarded copy of message values into t
//   - New<Target>Message<Variant>(ctx, args...): message builder
//   - Start<Target><Variant>(ctx, args...): build and launch
//   - Start<Target><Variant>{With,And}Flags(ctx, args..., flags): launch with flags
//
// Every routine is marked with the //starter:mainthread directive.
package gen
