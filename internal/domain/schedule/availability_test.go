package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rufoabrahamguyo/king-taper/internal/httperr"
)

const leadMin = 15

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func timeStrings(times []TimeOfDay) []string {
	out := make([]string, 0, len(times))
	for _, v := range times {
		out = append(out, v.String())
	}
	return out
}

func futureDate() time.Time {
	return time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
}

func clock() time.Time {
	return time.Date(2030, 1, 15, 12, 0, 0, 0, time.UTC)
}

func TestAvailableSlotsEmptyDay(t *testing.T) {
	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), clock(), leadMin, DayState{})

	assert.Equal(t, StatusAvailable, got.Status)
	require.Len(t, got.Times, 24)
	assert.Equal(t, "09:00", got.Times[0].String())
	assert.Equal(t, "20:30", got.Times[23].String())
}

func TestAvailableSlotsExcludesCoveredSlots(t *testing.T) {
	// A 60-minute Hair Color at 10:00 occupies [10:00, 11:00): both the
	// 10:00 and 10:30 starts must disappear for a 30-minute request,
	// while 09:30 and 11:00 stay offerable.
	day := DayState{Bookings: []BookedSlot{{Start: mustTime(t, "10:00"), Service: "Hair Color"}}}

	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), clock(), leadMin, day)

	times := timeStrings(got.Times)
	assert.Contains(t, times, "09:30")
	assert.Contains(t, times, "11:00")
	assert.NotContains(t, times, "10:00")
	assert.NotContains(t, times, "10:30")
	assert.Len(t, times, 22)
}

func TestAvailableSlotsLongServiceLooksAhead(t *testing.T) {
	// Requesting a 60-minute service: a 30-minute booking at 11:00 also
	// removes the 10:30 start, whose interval would run into it.
	day := DayState{Bookings: []BookedSlot{{Start: mustTime(t, "11:00"), Service: "Hair Cut"}}}

	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Color",
		futureDate(), clock(), leadMin, day)

	times := timeStrings(got.Times)
	assert.NotContains(t, times, "10:30")
	assert.NotContains(t, times, "11:00")
	assert.Contains(t, times, "10:00")
	assert.Contains(t, times, "11:30")
}

func TestAvailableSlotsWholeDayBlockDominates(t *testing.T) {
	day := DayState{
		Bookings: []BookedSlot{{Start: mustTime(t, "10:00"), Service: "Hair Cut"}},
		Blocks:   []Block{{WholeDay: true, Reason: "public holiday"}},
	}

	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), clock(), leadMin, day)

	assert.Equal(t, StatusDayBlocked, got.Status)
	assert.Equal(t, "public holiday", got.Reason)
	assert.Empty(t, got.Times)
}

func TestAvailableSlotsPartialBlock(t *testing.T) {
	day := DayState{Blocks: []Block{{
		Start: mustTime(t, "12:00"),
		End:   mustTime(t, "14:00"),
	}}}

	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), clock(), leadMin, day)

	times := timeStrings(got.Times)
	assert.NotContains(t, times, "12:00")
	assert.NotContains(t, times, "13:30")
	assert.Contains(t, times, "11:30")
	assert.Contains(t, times, "14:00")
}

func TestAvailableSlotsFullyBooked(t *testing.T) {
	day := DayState{Blocks: []Block{{
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "21:00"),
	}}}

	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), clock(), leadMin, day)

	assert.Equal(t, StatusFullyBooked, got.Status)
	assert.Empty(t, got.Times)
	assert.Empty(t, got.Reason)
}

func TestAvailableSlotsPastDate(t *testing.T) {
	yesterday := clock().AddDate(0, 0, -1)

	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		yesterday, clock(), leadMin, DayState{})

	assert.Equal(t, StatusFullyBooked, got.Status)
	assert.Empty(t, got.Times)
}

func TestAvailableSlotsLeadTimeToday(t *testing.T) {
	now := time.Date(2030, 6, 1, 14, 5, 0, 0, time.UTC)

	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), now, leadMin, DayState{})

	times := timeStrings(got.Times)
	assert.NotContains(t, times, "14:00")
	assert.Contains(t, times, "14:30")
	assert.Equal(t, "14:30", times[0])
}

func TestAvailableSlotsLeadTimeBoundary(t *testing.T) {
	// 14:15 + 15 minutes lands exactly on the 14:30 slot, which is still
	// rejected: the buffer is inclusive.
	now := time.Date(2030, 6, 1, 14, 15, 0, 0, time.UTC)

	got := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), now, leadMin, DayState{})

	times := timeStrings(got.Times)
	assert.NotContains(t, times, "14:30")
	assert.Contains(t, times, "15:00")
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	day := DayState{
		Bookings: []BookedSlot{
			{Start: mustTime(t, "10:00"), Service: "Hair Color"},
			{Start: mustTime(t, "15:00"), Service: "Hair Cut"},
		},
		Blocks: []Block{{Start: mustTime(t, "12:00"), End: mustTime(t, "13:00")}},
	}

	first := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), clock(), leadMin, day)
	second := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), "Hair Cut",
		futureDate(), clock(), leadMin, day)

	assert.Equal(t, first, second)
}

func TestValidateRequestCodes(t *testing.T) {
	day := DayState{
		Bookings: []BookedSlot{{Start: mustTime(t, "10:00"), Service: "Hair Color"}},
		Blocks:   []Block{{Start: mustTime(t, "12:00"), End: mustTime(t, "13:00")}},
	}

	tests := []struct {
		name string
		date time.Time
		time string
		want string
	}{
		{"past date", clock().AddDate(0, 0, -1), "10:00", ReasonPast},
		{"inside lead buffer", clock(), "12:00", ReasonPast},
		{"overlaps booking", futureDate(), "10:30", ReasonAlreadyBooked},
		{"overlaps block", futureDate(), "12:30", ReasonRangeBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(DefaultCatalog(), "Hair Cut",
				tt.date, mustTime(t, tt.time), clock(), leadMin, day)
			require.Error(t, err)
			assert.Equal(t, tt.want, httperr.BusinessCode(err))
		})
	}

	err := ValidateRequest(DefaultCatalog(), "Hair Cut",
		futureDate(), mustTime(t, "09:00"), clock(), leadMin, day)
	assert.NoError(t, err)
}

func TestValidateRequestWholeDayBlock(t *testing.T) {
	day := DayState{Blocks: []Block{{WholeDay: true, Reason: "maintenance"}}}

	err := ValidateRequest(DefaultCatalog(), "Hair Cut",
		futureDate(), mustTime(t, "10:00"), clock(), leadMin, day)

	require.Error(t, err)
	assert.Equal(t, ReasonDayBlocked, httperr.BusinessCode(err))
}

func TestValidateRequestBackToBack(t *testing.T) {
	// A Hair Color ending exactly at 11:00 leaves the 11:00 start free,
	// and the slot just before a booking is fine for a service that ends
	// exactly where the booking begins.
	day := DayState{Bookings: []BookedSlot{{Start: mustTime(t, "10:00"), Service: "Hair Color"}}}

	assert.NoError(t, ValidateRequest(DefaultCatalog(), "Hair Cut",
		futureDate(), mustTime(t, "11:00"), clock(), leadMin, day))
	assert.NoError(t, ValidateRequest(DefaultCatalog(), "Hair Cut",
		futureDate(), mustTime(t, "09:30"), clock(), leadMin, day))
}

// Every slot the listing offers must validate, and every grid slot the
// listing withholds must fail validation, for the same snapshot.
func TestListingMatchesValidation(t *testing.T) {
	day := DayState{
		Bookings: []BookedSlot{
			{Start: mustTime(t, "09:30"), Service: "Barrel Twist"},
			{Start: mustTime(t, "14:00"), Service: "Hair Cut"},
		},
		Blocks: []Block{{Start: mustTime(t, "16:00"), End: mustTime(t, "17:30")}},
	}

	for _, service := range []string{"Hair Cut", "Hair Color", "Barrel Twist"} {
		listed := AvailableSlots(DefaultBusinessHours(), DefaultCatalog(), service,
			futureDate(), clock(), leadMin, day)

		offered := make(map[TimeOfDay]bool, len(listed.Times))
		for _, v := range listed.Times {
			offered[v] = true
		}

		for _, slot := range DefaultBusinessHours().Slots() {
			err := ValidateRequest(DefaultCatalog(), service,
				futureDate(), slot, clock(), leadMin, day)
			if offered[slot] {
				assert.NoError(t, err, "service %s slot %s", service, slot)
			} else {
				assert.Error(t, err, "service %s slot %s", service, slot)
			}
		}
	}
}
