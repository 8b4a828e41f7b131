// Package screen clears the terminal between busy-stream pages.
package screen
