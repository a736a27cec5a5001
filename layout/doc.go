// Package layout groups raw OCR word detections into positioned text blocks.
//
// The pipeline runs three stages per page, each with its own detector and
// configuration:
//
//   - [WordFilter] - discards structural rows, empty text, and
//     low-confidence detections
//   - [LineDetector] - clusters words into horizontal lines by vertical
//     proximity
//   - [BlockDetector] - clusters consecutive lines into multi-line text
//     blocks using vertical-gap heuristics
//
// Typical usage:
//
//	words := layout.NewWordFilter().Filter(detections)
//	lines := layout.NewLineDetector().Detect(words)
//	blocks := layout.NewBlockDetector().Detect(lines)
//
// Each detector can be configured independently:
//
//	config := layout.DefaultLineConfig()
//	config.MergeThresholdPx = 14
//	detector := layout.NewLineDetectorWithConfig(config)
//
// All stages are pure given their inputs: they keep no state between calls,
// never error on empty or noisy input, and produce deterministic output, so
// independent pages can be processed by concurrent workers.
package layout
