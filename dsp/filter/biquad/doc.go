// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients], with an optional per-stage
// tanh saturator and a non-finite output guard. A [Cascade] chains exactly
// [NumSections] sections in series for the 12-pole morphing filter topology.
//
// This package provides the processing runtime only. Pole-pair voicing
// (shape interpolation, sample-rate remapping, pole to coefficient
// conversion) lives in dsp/zplane.
package biquad
