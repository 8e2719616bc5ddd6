package domain

import "time"

type Sample struct {
	At      time.Time
	BPM     int
	Contact ContactStatus
}

// Session is the ordered sample log of one monitoring run. Timestamps never go
// backwards; a sample stamped before its predecessor takes the predecessor's
// time. With a positive limit the oldest sample is dropped once the log is
// full.
type Session struct {
	ID        string
	Device    DeviceIdentity
	StartedAt time.Time
	limit     int
	samples   []Sample
}

func NewSession(id string, startedAt time.Time, limit int) *Session {
	if limit < 0 {
		limit = 0
	}
	return &Session{ID: id, StartedAt: startedAt, limit: limit}
}

func (s *Session) Append(sample Sample) Sample {
	if n := len(s.samples); n > 0 && sample.At.Before(s.samples[n-1].At) {
		sample.At = s.samples[n-1].At
	}
	if s.limit > 0 && len(s.samples) == s.limit {
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:len(s.samples)-1]
	}
	s.samples = append(s.samples, sample)
	return sample
}

func (s *Session) Len() int { return len(s.samples) }

// Samples returns a copy of the log.
func (s *Session) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

func (s *Session) Stats() Stats {
	return ComputeStats(s.samples)
}

type Stats struct {
	Count int
	Min   int
	Max   int
	Mean  float64
	Last  int
}

func ComputeStats(samples []Sample) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	st := Stats{Count: len(samples), Min: samples[0].BPM, Max: samples[0].BPM}
	total := 0
	for _, s := range samples {
		if s.BPM < st.Min {
			st.Min = s.BPM
		}
		if s.BPM > st.Max {
			st.Max = s.BPM
		}
		total += s.BPM
	}
	st.Mean = float64(total) / float64(len(samples))
	st.Last = samples[len(samples)-1].BPM
	return st
}
