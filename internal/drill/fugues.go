package drill

import (
	"slices"
	"strings"
	"time"
)

// DefaultFuguesSpeed is used when no preference is stored.
const DefaultFuguesSpeed = "1H"

// FuguesSpeeds lists the selectable speeds from fastest to slowest.
var FuguesSpeeds = []string{"1H", "2H", "3H", "4H", "5H", "6H"}

var fuguesDelays = map[string]time.Duration{
	"1H": 200 * time.Millisecond,
	"2H": 500 * time.Millisecond,
	"3H": time.Second,
	"4H": 2 * time.Second,
	"5H": 5 * time.Second,
	"6H": 10 * time.Second,
}

// FuguesDelay returns how long the prompt stays visible at speed. Unknown
// speeds use DefaultFuguesSpeed.
func FuguesDelay(speed string) time.Duration {
	if d, ok := fuguesDelays[strings.ToUpper(strings.TrimSpace(speed))]; ok {
		return d
	}
	return fuguesDelays[DefaultFuguesSpeed]
}

// NormalizeSpeed returns speed in canonical form, or DefaultFuguesSpeed if
// it is not a known speed.
func NormalizeSpeed(speed string) string {
	s := strings.ToUpper(strings.TrimSpace(speed))
	if _, ok := fuguesDelays[s]; ok {
		return s
	}
	return DefaultFuguesSpeed
}

// NextSpeed cycles to the speed after speed, wrapping around.
func NextSpeed(speed string) string {
	i := slices.Index(FuguesSpeeds, NormalizeSpeed(speed))
	return FuguesSpeeds[(i+1)%len(FuguesSpeeds)]
}
