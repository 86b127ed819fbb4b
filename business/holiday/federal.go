package holiday

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// FederalCalendar flags dates that fall on observed US federal holidays.
// Used only to annotate output records, never to classify them.
type FederalCalendar struct {
	calendar *cal.BusinessCalendar
}

// MakeFederalCalendar builds FederalCalendar with the federal holiday set
func MakeFederalCalendar() *FederalCalendar {
	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	return &FederalCalendar{calendar: calendar}
}

// IsFederalHoliday returns true if at is on an observed federal holiday
func (f *FederalCalendar) IsFederalHoliday(at time.Time) bool {
	_, observed, _ := f.calendar.IsHoliday(at)
	return observed
}
