// Package emit is the rendering core shared by every language target. An
// emitter builds a fragment tree through a Writer (lines, tables, annotated
// regions, multiline blocks); indentation and blank-line layout are resolved
// deterministically when the tree is flattened, and symbolic names stay
// unresolved until every namespace is known.
//
// Contract violations (unbalanced indentation, target mismatches, eager name
// access) panic with *ContractError; data-dependent generation concerns are
// expressed as issue-annotated regions in otherwise-valid output and never
// fail a render.
package emit
