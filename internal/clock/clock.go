package clock

import "time"

// Clock отдаёт текущее время для меток created/updated.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System возвращает часы реального времени в UTC.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed — часы с постоянным временем (для тестов).
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
