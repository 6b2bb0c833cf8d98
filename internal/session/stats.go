package session

import "time"

// Stats is a HUD snapshot derived from State. It holds no state of its own.
type Stats struct {
	Total     int
	Pending   int
	Answered  int
	Fails     int
	Successes int
	Precision float64 // percent, 0 when nothing has been answered
	Average   time.Duration
	Last      time.Duration
}

// Stats computes the current snapshot.
func (s *State) Stats() Stats {
	pending := s.Pending()
	st := Stats{
		Total:     s.TotalCount,
		Pending:   pending,
		Answered:  max(0, s.TotalCount-pending),
		Fails:     s.FailCount,
		Successes: s.SuccessCount,
		Last:      s.LastDuration,
	}
	if attempts := s.SuccessCount + s.FailCount; attempts > 0 {
		st.Precision = float64(s.SuccessCount) / float64(attempts) * 100
	}
	if s.SuccessCount > 0 {
		st.Average = s.TotalDuration / time.Duration(s.SuccessCount)
	}
	return st
}

// AverageSeconds returns Average in seconds.
func (st Stats) AverageSeconds() float64 { return st.Average.Seconds() }

// LastSeconds returns Last in seconds.
func (st Stats) LastSeconds() float64 { return st.Last.Seconds() }
