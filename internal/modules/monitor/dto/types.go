package dto

import "time"

type StartInput struct {
	Address string
	Name    string
	Timeout time.Duration
}

type StartOutput struct {
	SessionID  string
	DeviceName string
	Address    string
	StartedAt  time.Time
}

type DeviceOutput struct {
	Name    string
	Address string
}

type SampleOutput struct {
	At      time.Time
	BPM     int
	Zone    string
	Contact string
}

type StatsOutput struct {
	Count int
	Min   int
	Max   int
	Mean  float64
	Last  int
}

type SessionOutput struct {
	SessionID string
	Device    DeviceOutput
	StartedAt time.Time
	Streaming bool
	Samples   []SampleOutput
	Stats     StatsOutput
}
