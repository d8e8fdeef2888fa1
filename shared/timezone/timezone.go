package timezone

import (
	"salon/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var location = sync.OnceValue(func() *time.Location {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("APP_TIMEZONE is empty, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, using UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone loaded")

	return loc
})

// GetLocation returns the salon's zone.
func GetLocation() *time.Location {
	return location()
}

func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

// Parse reads value as wall time in the salon's zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Today is midnight of the current civil date.
func Today() time.Time {
	return midnight(Now())
}

// IsPastDate reports whether date's civil day is before today.
func IsPastDate(date time.Time) bool {
	return midnight(ToAppTime(date)).Before(Today())
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
