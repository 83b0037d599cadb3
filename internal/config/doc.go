// Package config loads starter-generator settings from starter.yaml or
// starter.toml.
//
// Example starter.yaml:
//
//	packages: ["./app/..."]
//	suffix: Starter
//	output:
//	  package: example.com/app/starters
//	  dir: ./app/starters
//	capabilities:
//	  reference: example.com/app/nav.Parcelable
//	  value: encoding.BinaryMarshaler
//	jobs: 4
package config
