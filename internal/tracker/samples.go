package tracker

import (
	"time"

	"github.com/zulandar/kitlog/internal/models"
	"github.com/zulandar/kitlog/internal/stage"
)

var sampleOpts = []CreateOpts{
	{
		KitName: "RX-93 Nu Gundam Ver.Ka",
		Grade:   "Master Grade",
		Scale:   "1/100",
		Status:  stage.SnapBuild,
		Notes:   "Metallic frame, matte topcoat planned.",
		Started: "2024-02-10",
		Target:  "2024-04-01",
	},
	{
		KitName: "Gundam Barbatos Lupus Rex",
		Grade:   "High Grade",
		Scale:   "1/144",
		Status:  stage.PaintFinish,
		Notes:   "Custom weathering with soot pastels. Add chipped paint around claws.",
		Started: "2024-01-14",
		Target:  "2024-03-05",
	},
	{
		KitName: "MS-06 Zaku II",
		Grade:   "Real Grade",
		Scale:   "1/144",
		Status:  stage.Preparation,
		Notes:   "Test fitting color-matched third-party decals.",
		Started: "2024-03-01",
		Target:  "2024-04-20",
	},
	{
		KitName: "Wing Gundam Zero EW",
		Grade:   "Perfect Grade",
		Scale:   "1/60",
		Status:  stage.ShowcaseReady,
		Notes:   "Pearl clear coat + LED kit installed.",
		Started: "2023-11-02",
		Target:  "2024-02-15",
	},
}

// Samples returns the demo collection. Entry i was created 2i days and
// last touched i days before now.
func Samples(now time.Time, newID func() string) []models.Build {
	const day = 24 * time.Hour
	out := make([]models.Build, len(sampleOpts))
	for i, opts := range sampleOpts {
		b := NewBuild(opts, newID(), now)
		b.CreatedAt = now.Add(-time.Duration(2*i) * day)
		b.UpdatedAt = now.Add(-time.Duration(i) * day)
		out[i] = b
	}
	return out
}
