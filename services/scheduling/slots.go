package scheduling

import "visioncare/models"

// CanonicalSlots is the fixed list of bookable times per day: business hours
// on the hour, with the midday gap excluded. Static configuration, not
// derived data.
var CanonicalSlots = []string{
	"08:00", "09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00",
}

// IsCanonicalSlot reports whether t is one of the bookable times.
func IsCanonicalSlot(t string) bool {
	for _, s := range CanonicalSlots {
		if s == t {
			return true
		}
	}
	return false
}

// AvailableSlots returns the canonical slots not already taken for the given
// specialist and date, in canonical order. With an empty specialistID or
// date it returns no slots at all: offering the full set before both are
// chosen would invite bookings with no specialist or day attached.
//
// Purely computed from its inputs. The result is advisory; the storage
// layer's unique (specialist, date, time) index is what actually prevents a
// double booking.
func AvailableSlots(appointments []models.Appointment, specialistID, date string) []string {
	if specialistID == "" || date == "" {
		return []string{}
	}

	taken := make(map[string]struct{}, len(appointments))
	for _, a := range appointments {
		if a.SpecialistID == specialistID && a.Date == date {
			taken[a.Time] = struct{}{}
		}
	}

	free := make([]string, 0, len(CanonicalSlots))
	for _, s := range CanonicalSlots {
		if _, ok := taken[s]; !ok {
			free = append(free, s)
		}
	}
	return free
}
