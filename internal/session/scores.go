package session

import "time"

// MaxScores is how many recent solve times are kept.
const MaxScores = 100

// Scores is the solve history. Times are in milliseconds.
type Scores struct {
	Times  []int64 `json:"times" yaml:"times"`
	Solves int     `json:"solves" yaml:"solves"`
	Best   int64   `json:"best" yaml:"best"`
	Worst  int64   `json:"worst" yaml:"worst"`
}

// Add records a solve and reports whether it set a new best.
func (s *Scores) Add(d time.Duration) bool {
	ms := d.Milliseconds()
	s.Times = append(s.Times, ms)
	if len(s.Times) > MaxScores {
		s.Times = s.Times[len(s.Times)-MaxScores:]
	}
	s.Solves++

	best := false
	if s.Best == 0 || ms < s.Best {
		s.Best = ms
		best = true
	}
	if ms > s.Worst {
		s.Worst = ms
	}
	return best
}

// Average returns the mean of the last n times, or 0 if fewer are recorded.
func (s *Scores) Average(n int) time.Duration {
	if n <= 0 || len(s.Times) < n {
		return 0
	}
	var sum int64
	for _, ms := range s.Times[len(s.Times)-n:] {
		sum += ms
	}
	return time.Duration(sum/int64(n)) * time.Millisecond
}

// Stats is a printable summary of the history.
type Stats struct {
	Solves int
	Best   time.Duration
	Worst  time.Duration
	Ao5    time.Duration
	Ao12   time.Duration
	Ao25   time.Duration
}

// Stats summarizes the history.
func (s *Scores) Stats() Stats {
	return Stats{
		Solves: s.Solves,
		Best:   time.Duration(s.Best) * time.Millisecond,
		Worst:  time.Duration(s.Worst) * time.Millisecond,
		Ao5:    s.Average(5),
		Ao12:   s.Average(12),
		Ao25:   s.Average(25),
	}
}

// Reset clears the history.
func (s *Scores) Reset() {
	*s = Scores{}
}
