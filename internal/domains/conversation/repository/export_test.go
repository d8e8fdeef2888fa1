package repository

import "time"

func SetMemoryClock(m *Memory, now func() time.Time) {
	m.now = now
}
