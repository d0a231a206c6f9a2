package thecube

import "errors"

// Sentinel errors for the thecube package.
var (
	// State errors
	ErrNotPlaying = errors.New("thecube: game is not in progress")
	ErrPlaying    = errors.New("thecube: game already in progress")
	ErrBusy       = errors.New("thecube: cube is animating")
)
