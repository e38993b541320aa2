// Command icsexport writes one .ics file per event of a CSV event feed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"governanceevents/config"
	"governanceevents/internal/calendar"
	"governanceevents/internal/domain"
	"governanceevents/internal/feed"
)

func main() {
	feedLocation := flag.String("feed", "data/events.csv", "event feed file path or URL")
	outDir := flag.String("out", "calendar", "directory the .ics files are written to")
	tz := flag.String("tz", "UTC", "time zone event dates are read in")
	uidDomain := flag.String("uid-domain", calendar.DefaultUIDDomain, "host part of generated UIDs")
	flag.Parse()

	logger := config.NewLogger()
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		logger.Error("invalid time zone", "tz", *tz, "err", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	source := feed.NewSource(*feedLocation, feed.NewParser(loc))
	written, err := exportFeed(ctx, source, calendar.Generator{UIDDomain: *uidDomain}, *outDir, logger)
	if err != nil {
		logger.Error("calendar export failed", "feed", *feedLocation, "err", err)
		os.Exit(1)
	}
	logger.Info("calendar export finished", "feed", *feedLocation, "out", *outDir, "files", written)
}

// exportFeed saves every event of source as <slug>.ics under dir and returns how many files were written.
// Events whose titles share a slug get the event id appended.
func exportFeed(ctx context.Context, source domain.EventSource, gen calendar.Generator, dir string, logger *slog.Logger) (int, error) {
	events, err := source.Load(ctx)
	if err != nil {
		return 0, err
	}
	used := make(map[string]bool, len(events))
	written := 0
	for _, ev := range events {
		stem := calendar.Stem(ev.Title, "event-"+ev.ID)
		if used[stem] {
			stem += "-" + ev.ID
		}
		used[stem] = true
		path, err := calendar.Save(dir, stem, gen.GenerateICS(calendar.FromDomain(ev)))
		if err != nil {
			return written, fmt.Errorf("event %q: %w", ev.Title, err)
		}
		logger.Debug("calendar written", "path", path)
		written++
	}
	return written, nil
}
