package checker

import (
	"vex/internal/ast"
	"vex/internal/token"
)

// AssignmentCompatible implements spec.md §4.I: a structural comparison of
// two type chains under assignment rules (used for initializers, plain and
// compound assignment, return statements, and call arguments).
func AssignmentCompatible(lhs, rhs ast.TypeList) bool {
	if lhs.IsVoid() || rhs.IsVoid() || lhs.IsBad() || rhs.IsBad() {
		return false
	}

	if lhs.IsPointer() {
		if !rhs.IsPointer() && rhs.Base().Kind != token.NullPtr {
			return false
		}
		return pointerChainsCompatible(lhs, rhs)
	}

	if lhs.IsIdentifierBase() || rhs.IsIdentifierBase() {
		if !lhs.IsIdentifierBase() || !rhs.IsIdentifierBase() {
			return false
		}
		return lhs.ResolvedStruct() != nil && lhs.ResolvedStruct() == rhs.ResolvedStruct()
	}

	// All built-in scalars interconvert under this design (spec.md §4.I).
	return true
}

// pointerChainsCompatible walks two pointer-qualified chains position by
// position. Divergence is tolerated exactly when one side becomes Void at
// that position -- "void* is universally assignable" -- and when both
// chains reach DecPtr, the resolved struct identities must match.
func pointerChainsCompatible(lhs, rhs ast.TypeList) bool {
	if !rhs.IsPointer() {
		// rhs is nullptr_t: any pointer accepts it.
		return true
	}

	i, j := 0, 0
	for i < len(lhs) && j < len(rhs) {
		a, b := lhs[i], rhs[j]

		if a.Kind == b.Kind {
			if a.Kind == token.DecPtr && a.Struct != b.Struct {
				return false
			}
			i++
			j++
			continue
		}

		if a.Kind == token.Void || b.Kind == token.Void {
			return true
		}

		return false
	}

	return len(lhs)-i == len(rhs)-j
}
