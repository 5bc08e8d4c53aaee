// Package grid provides labeled N-dimensional arrays for spectral diagnostics.
//
// An array couples row-major numeric data with named axes, per-axis coordinate
// sequences, and scalar attributes. Arrays may carry a chunk layout describing
// how the data is partitioned along each axis; the Blockwise primitives apply
// pure per-partition functions while validating declared layout constraints.
package grid
