// Package requirements provides lint rules for pip requirements manifests.
//
// Rules in this package:
//   - RQ01: Line does not match the dependency specifier grammar
//   - RQ02: Duplicate package with compatible constraints
//   - RQ03: Duplicate package with conflicting constraints
//   - RQ04: Requirement is not pinned to an exact version
//   - RQ05: Package name is not in canonical form
//   - RQ06: Duplicate extra within one requirement
//   - RQ07: Wildcard version used with an ordering operator
//   - RQ08: Contradictory constraints within one requirement
package requirements
