// Package fetch installs a pi-gen checkout for later builds.
//
// The toolchain is distributed as a git repository; fetch shallow-clones
// it at a requested ref, either into an explicit directory or into the
// tool's cache. An existing non-empty destination is never overwritten.
package fetch
