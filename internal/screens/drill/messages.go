package drill

// checkDueMsg is sent when the debounce period of an armed check ends.
type checkDueMsg struct {
	Token int
}

// revealDoneMsg is sent when a Fugues prompt has been shown long enough.
type revealDoneMsg struct {
	Generation int
}

// liveTickMsg refreshes the live question timer. A tick whose generation
// is no longer current ends its chain.
type liveTickMsg struct {
	Generation int
}
