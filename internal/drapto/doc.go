// Package drapto runs AV1 conversions through the Drapto Go library.
//
// Drapto owns the whole encode (crop detection, SVT-AV1 parameters, Opus
// audio, validation) and writes <stem>.mkv into an output directory. Its
// Reporter callbacks are translated into structured log lines; encoding
// progress is sampled in ten percent steps.
package drapto
