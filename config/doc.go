// Package config holds the user-facing properties of the tracker and
// converts them into the configuration of the tracking and marking
// packages.
//
// Properties are read from YAML. Unknown keys are rejected and missing
// keys keep their defaults:
//
//	message: true
//	mark: both
//	speed: 20
//	min_size: 20
//	max_size: 0
//	color0: 0xFF0000
//	color1: 0x0000FF
//	mcolor: 0x00FF00
//	threshold: 88
//	objects: 4
//
// Every value is range checked by Validate before any frame is processed.
package config
