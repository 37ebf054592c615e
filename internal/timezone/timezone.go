package timezone

import "time"

// A organização opera num único fuso. Todos os slots de agenda
// são interpretados nele.
const DefaultTimezone = "America/Sao_Paulo"

var orgTZ = DefaultTimezone

// Configure troca o fuso da organização (chamado uma vez no boot).
func Configure(tz string) {
	if IsValid(tz) {
		orgTZ = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location() *time.Location {
	if loc, err := time.LoadLocation(orgTZ); err == nil {
		return loc
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
