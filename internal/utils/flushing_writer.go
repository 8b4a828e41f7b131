package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

type fileDescriptorHolder interface {
	Fd() uintptr
}

// invalidFileDescriptor is reported when the destination is not backed by a file.
const invalidFileDescriptor = ^uintptr(0)

// FlushingWriter serializes writes and flushes buffered destinations after each one, so in-place redraws reach the terminal immediately.
type FlushingWriter struct {
	destination io.Writer
	mutex       sync.Mutex
}

// NewFlushingWriter wraps destination; wrapping an existing FlushingWriter returns it unchanged.
func NewFlushingWriter(destination io.Writer) io.Writer {
	if destination == nil {
		return io.Discard
	}
	if existing, isFlushing := destination.(*FlushingWriter); isFlushing {
		return existing
	}
	return &FlushingWriter{destination: destination}
}

// Write forwards data and flushes when the destination supports it.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	written, writeError := writer.destination.Write(data)
	if writeError != nil {
		return written, writeError
	}
	if bufferedDestination, canFlush := writer.destination.(flusher); canFlush {
		return written, bufferedDestination.Flush()
	}
	return written, nil
}

// Fd exposes the destination's file descriptor so terminal detection sees through the wrapper.
func (writer *FlushingWriter) Fd() uintptr {
	if holder, isFile := writer.destination.(fileDescriptorHolder); isFile {
		return holder.Fd()
	}
	return invalidFileDescriptor
}
