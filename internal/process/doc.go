// Package process kills the headless Chrome process tree left behind by a
// closed renderer.
package process
