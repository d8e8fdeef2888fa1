package jwt

import "time"

func SetClock(j JWT, now func() time.Time) {
	j.(*Service).now = now
}
