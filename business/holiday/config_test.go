package holiday

import (
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParseDefinitions(t *testing.T) {
	is := is.New(t)
	content := `
holiday_weeks:
  - name: Thanksgiving
    anchor_type: relative
    relative_rule: fourth_thursday_november
    priority: 12
  - name: Veterans Day
    anchor_date: 11-11
    week_offset: -1
    spans_year_boundary: false
`
	defs, err := ParseDefinitions([]byte(content))
	is.NoErr(err)
	is.Equal(len(defs), 2)

	is.Equal(defs[0].Name, "Thanksgiving")
	is.Equal(defs[0].Priority, 12)
	anchor, err := defs[0].Anchor.Resolve(2024)
	is.NoErr(err)
	is.Equal(anchor, testDate(2024, time.November, 28))

	// anchor_type defaults to fixed
	is.Equal(defs[1].WeekOffset, -1)
	anchor, err = defs[1].Anchor.Resolve(2024)
	is.NoErr(err)
	is.Equal(anchor, testDate(2024, time.November, 11))
}

func TestParseDefinitions_errors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantReason string
	}{
		{
			name: "unknown relative rule fails at parse time",
			content: "holiday_weeks:\n" +
				"  - name: Bad Rule\n" +
				"    anchor_type: relative\n" +
				"    relative_rule: fifth_friday_foo\n",
			wantReason: "unknown relative_rule",
		},
		{
			name: "unknown anchor type",
			content: "holiday_weeks:\n" +
				"  - name: Bad Type\n" +
				"    anchor_type: lunar\n",
			wantReason: "unknown anchor_type",
		},
		{
			name: "malformed anchor date",
			content: "holiday_weeks:\n" +
				"  - name: Bad Date\n" +
				"    anchor_type: fixed\n" +
				"    anchor_date: July 4\n",
			wantReason: "anchor_date",
		},
		{
			name: "month out of range",
			content: "holiday_weeks:\n" +
				"  - name: Bad Month\n" +
				"    anchor_type: fixed\n" +
				"    anchor_date: 13-01\n",
			wantReason: "invalid month",
		},
		{
			name: "missing name",
			content: "holiday_weeks:\n" +
				"  - anchor_type: fixed\n" +
				"    anchor_date: 07-04\n",
			wantReason: "missing name",
		},
		{
			name:       "no holiday weeks",
			content:    "holiday_weeks: []\n",
			wantReason: "no holiday_weeks",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefinitions([]byte(tt.content))
			if err == nil {
				t.Errorf("%v: ParseDefinitions() produced no error, but we want one", tt.name)
				return
			}
			if !strings.Contains(err.Error(), tt.wantReason) {
				t.Errorf("%v: ParseDefinitions() error = %v, want reason containing %q", tt.name, err, tt.wantReason)
			}
		})
	}
}

func TestDefaultDefinitions(t *testing.T) {
	is := is.New(t)
	defs := DefaultDefinitions()
	is.Equal(len(defs), 14)

	// every default holiday appears in the chronological presentation order
	order := make(map[string]bool)
	for _, name := range ChronologicalOrder() {
		order[name] = true
	}
	for _, def := range defs {
		is.True(order[def.Name])
	}

	// every definition resolves over the years covered by the source data
	for year := 2019; year <= 2025; year++ {
		for _, def := range defs {
			_, err := def.Anchor.Resolve(year)
			is.NoErr(err)
		}
	}
}
