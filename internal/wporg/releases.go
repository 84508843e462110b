package wporg

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wpcheck/wpcheck/internal/wpversion"
)

// ErrNoReleases is returned when the releases page contains no parsable release rows
var ErrNoReleases = errors.New("no releases found on page")

// Release is the newest release of one branch in the releases archive,
// together with its publication date.
type Release struct {
	// Version is the release version, e.g. "5.8.1"
	Version string
	// Date is the publication date; zero when the page omits or mangles it
	Date time.Time
}

// releaseDateLayouts are the date formats seen on the releases archive
var releaseDateLayouts = []string{
	"January 2, 2006",
	"2006-01-02",
}

// parseReleases extracts the newest release of every branch from the
// releases archive HTML. The page lists one table per branch with the
// newest release in the first data row, so only that row is read.
func parseReleases(r io.Reader) ([]Release, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse releases page: %w", err)
	}

	var releases []Release
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		// Header rows use th cells and are skipped
		row := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
			return tr.Find("td").Length() >= 2
		}).First()
		if row.Length() == 0 {
			return
		}

		cells := row.Find("td")
		version := strings.TrimSpace(cells.Eq(0).Text())
		if _, err := wpversion.Parse(version); err != nil {
			return
		}

		release := Release{Version: version}
		if date, ok := parseReleaseDate(strings.TrimSpace(cells.Eq(1).Text())); ok {
			release.Date = date
		}
		releases = append(releases, release)
	})

	if len(releases) == 0 {
		return nil, ErrNoReleases
	}
	return releases, nil
}

// parseReleaseDate parses a publication date from the releases archive.
func parseReleaseDate(text string) (time.Time, bool) {
	for _, layout := range releaseDateLayouts {
		if date, err := time.Parse(layout, text); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// latestRelease returns the release with the highest version.
func latestRelease(releases []Release) (*Release, error) {
	var latest *Release
	var latestVersion *wpversion.Version
	for i := range releases {
		parsed, err := wpversion.Parse(releases[i].Version)
		if err != nil {
			continue
		}
		if latest == nil || wpversion.Compare(parsed, latestVersion) > 0 {
			latest = &releases[i]
			latestVersion = parsed
		}
	}
	if latest == nil {
		return nil, ErrNoReleases
	}
	return latest, nil
}
