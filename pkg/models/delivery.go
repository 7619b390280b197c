package models

import (
	"fmt"
	"time"
)

// Delivery is a fire request handed to a delivery gateway when a race's
// two-minute warning triggers.
type Delivery struct {
	ID      string    // unique per fire, for log correlation
	RaceID  RaceID    // addressable key for later cancellation
	Race    Race      // the race that triggered
	StartAt time.Time // the race start resolved on the firing day
	FiredAt time.Time
	Melody  Melody // tone preference at fire time, passed through untouched
}

// Title is the platform notification title.
func (d Delivery) Title() string {
	return fmt.Sprintf("Race Time: %s at %s", d.Race.Time, d.Race.Place)
}

// Body is the platform notification body.
func (d Delivery) Body() string {
	return fmt.Sprintf("%s\n%d runners.", d.Race.Details, d.Race.Runners)
}

// AlertTitle is the heading of the in-app warning dialog.
func (d Delivery) AlertTitle() string {
	return "TWO MINUTE WARNING"
}

// AlertMessage is the text of the in-app warning dialog.
func (d Delivery) AlertMessage() string {
	return fmt.Sprintf("Race Time: %s at %s\n%s", d.Race.Time, d.Race.Place, d.Race.Details)
}
