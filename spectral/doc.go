// Package spectral computes Fourier-domain diagnostics over labeled arrays:
// forward transforms with frequency-axis relabeling, power and cross spectra
// with spectral-density normalization, and azimuthally averaged isotropic
// spectra.
//
// The pipeline runs strictly forward: spacing validation, optional
// detrending, optional Hann windowing, axis-wise FFT, frequency relabeling,
// periodogram formation, and radial binning. Every operation either completes
// fully or fails before producing output; there are no partial results.
//
// Chunked arrays are executed per partition. The execution path is selected
// once at the DFT boundary from the array's chunk layout: eager arrays are
// transformed in place over the whole buffer, chunked arrays through the
// blockwise primitive of package grid under the layout constraints each stage
// declares.
package spectral
