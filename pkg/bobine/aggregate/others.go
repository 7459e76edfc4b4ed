package aggregate

import (
	"regexp"

	"github.com/lucas-science/bobine/pkg/bobine/models"
	"github.com/montanaflynn/stats"
)

var reBareCarbon = regexp.MustCompile(`^[cC](\d+)`)

// OtherName returns "Other Cn" for names starting with a bare carbon
// number such as "C5=", and the name unchanged otherwise.
func OtherName(name string) string {
	if m := reBareCarbon.FindStringSubmatch(name); m != nil {
		return "Other C" + m[1]
	}
	return name
}

// GroupOthers merges peaks sharing an "Other Cn" name into one peak at the
// position of the first, summing relative areas and averaging retention
// times. Other peaks are kept as they are.
func GroupOthers(peaks []models.Peak) []models.Peak {
	type group struct {
		at  int
		rts stats.Float64Data
	}
	groups := make(map[string]*group)
	var out []models.Peak
	for _, p := range peaks {
		name := OtherName(p.Name)
		if name == p.Name {
			out = append(out, p)
			continue
		}
		g, ok := groups[name]
		if !ok {
			g = &group{at: len(out)}
			groups[name] = g
			out = append(out, models.Peak{Name: name})
		}
		out[g.at].RelativeArea += p.RelativeArea
		if p.RetentionTime != nil {
			g.rts = append(g.rts, *p.RetentionTime)
		}
	}
	for _, g := range groups {
		if mean, err := stats.Mean(g.rts); err == nil {
			out[g.at].RetentionTime = &mean
		}
	}
	return out
}

// TotalArea sums the relative areas of peaks.
func TotalArea(peaks []models.Peak) float64 {
	var sum float64
	for _, p := range peaks {
		sum += p.RelativeArea
	}
	return sum
}
