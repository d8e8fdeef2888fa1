// Package timezone anchors every calendar computation of the salon to the
// zone configured in APP_TIMEZONE (an IANA name such as "Europe/Moscow").
//
// Booking dates are civil dates: Today and IsPastDate compare midnights in
// that zone, and Parse reads "2006-01-02" style values as local wall time.
// An unknown or empty zone falls back to UTC with a logged warning.
package timezone
