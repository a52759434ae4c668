// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for file discovery, parsing, translating blocks into the
// config.Model, and converting attribute values through cty.
//
// A configuration may be split across any number of .hcl files. The
// ingest, telemetry and seed blocks may each appear at most once across all
// files; fact blocks may appear anywhere and are returned in file order.
package hcl
