package domain

type Zone struct {
	Name string
	Low  int
	High int
}

var zones = []Zone{
	{Name: "Out of Range", Low: 0, High: 86},
	{Name: "Fat Burn", Low: 86, High: 121},
	{Name: "Cardio", Low: 121, High: 147},
	{Name: "Peak", Low: 147, High: 220},
}

// Zones returns the heart-rate zones from lowest to highest.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// ZoneFor places bpm in the zone whose [Low, High) range contains it.
// Readings at or above the top bound belong to the top zone.
func ZoneFor(bpm int) Zone {
	for _, z := range zones {
		if bpm < z.High {
			return z
		}
	}
	return zones[len(zones)-1]
}
