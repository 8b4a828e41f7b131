// Package animation renders the busy stream's non-textual effects: a progress
// bar redrawn in place and a rotating spinner. Both block until their duration
// elapses or their context is cancelled.
package animation
