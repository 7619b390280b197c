package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/borgmon/race-alarm/pkg/alarm"
	"github.com/borgmon/race-alarm/pkg/catalog"
	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/borgmon/race-alarm/pkg/upcoming"
	"github.com/urfave/cli"
)

func runList(c *cli.Context) error {
	lg := logger.NewStandardLogger(nil)
	cfg, _, err := loadSettings(lg)
	if err != nil {
		return err
	}

	res := catalog.NewLoader(cfg, lg).Load(context.Background())
	now := time.Now()
	return printBoard(os.Stdout, upcoming.Filter(res.Races, now), res.Origin, now)
}

func printBoard(w io.Writer, races []models.Race, origin catalog.Origin, now time.Time) error {
	if len(races) == 0 {
		_, err := fmt.Fprintln(w, noRacesText)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tPLACE\tDETAILS\tRUNNERS\tSTATUS\tSTARTS IN")
	for _, row := range makeBoard(races, now, alarm.Snapshot{}) {
		countdown := row.Countdown
		if countdown == "" {
			countdown = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Race.ID(), row.Race.Time, row.Race.Place, row.Race.Details,
			strconv.Itoa(row.Race.Runners), row.Status.Label, countdown)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if origin == catalog.OriginFallback {
		_, err := fmt.Fprintln(w, "\n(race feed unavailable, showing the bundled card)")
		return err
	}
	return nil
}
