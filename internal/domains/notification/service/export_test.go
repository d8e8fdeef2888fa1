package service

import "time"

func SetReminderClock(r Reminder, now func() time.Time) {
	r.(*reminderImpl).now = now
}
