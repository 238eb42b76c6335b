// Package editorconfig provides lint rules for EditorConfig files.
//
// Rules in this package:
//   - EC01: Missing "root = true" declaration
//   - EC02: "root" declared more than once or outside the preamble
//   - EC03: Section header is not a valid glob pattern
//   - EC04: Unknown property key
//   - EC05: Invalid property value
//   - EC06: Duplicate property within a section
//   - EC07: Section pattern can never match a file
package editorconfig
