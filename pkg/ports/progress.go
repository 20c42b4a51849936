package ports

// Progress reports progress of a long-running loop to the user.
type Progress interface {
	// Start begins a new bar with the given description and step count.
	Start(description string, total int) ProgressBar
}

// ProgressBar tracks a single loop started by Progress.
type ProgressBar interface {
	// Add advances the bar by n steps.
	Add(n int)

	// Finish closes the bar.
	Finish()
}
