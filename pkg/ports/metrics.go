package ports

// MetricsRecorder collects run counters.
type MetricsRecorder interface {
	// SourceFinished counts one source by kind ("video", "images") and status.
	SourceFinished(kind, status string)

	// ClipWritten counts one clip written for the named stream.
	ClipWritten(stream string)

	// FramesDecoded counts decoded frames.
	FramesDecoded(n int)

	// FramesPadded counts frames reused by backward padding.
	FramesPadded(n int)

	// Flush persists collected metrics.
	Flush() error
}
