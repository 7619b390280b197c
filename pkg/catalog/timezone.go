package catalog

import "github.com/emersion/go-ical"

// Feeds exported from Outlook carry Windows zone names in TZID.
var windowsToIANA = map[string]string{
	"GMT Standard Time":            "Europe/London",
	"Irish Standard Time":          "Europe/Dublin",
	"W. Europe Standard Time":      "Europe/Berlin",
	"Romance Standard Time":        "Europe/Paris",
	"Central Europe Standard Time": "Europe/Budapest",
	"Eastern Standard Time":        "America/New_York",
	"Pacific Standard Time":        "America/Los_Angeles",
	"AUS Eastern Standard Time":    "Australia/Sydney",
	"UTC":                          "UTC",
}

// normalizeComponentTimezones rewrites a Windows TZID on DTSTART to its IANA name.
func normalizeComponentTimezones(comp *ical.Component) {
	dtstart := comp.Props.Get(ical.PropDateTimeStart)
	if dtstart == nil {
		return
	}
	if tzid := dtstart.Params.Get(ical.ParamTimezoneID); tzid != "" {
		if iana, ok := windowsToIANA[tzid]; ok {
			dtstart.Params.Set(ical.ParamTimezoneID, iana)
		}
	}
}
