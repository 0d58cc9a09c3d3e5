package classify

import (
	"strings"
	"time"

	"venturescope/pkg/contracts/domain"
)

var (
	colsAcquirer     = []string{"acquired by", "acquirer", "acquirer name"}
	colsAcquiredDate = []string{"acquired date", "announced date", "exit date"}
	colsClosedDate   = []string{"closed date", "closure date"}
)

// exitDateLayouts are tried in order when parsing closure/exit dates.
var exitDateLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	"01/02/2006",
	"Jan 2006",
}

// Status inspects a company's operating status and acquisition fields. It
// returns nil for an active company — the absence of a status, not a false
// one.
func Status(c domain.ScoredCompany) *domain.AcquisitionStatus {
	folded := strings.ToLower(strings.TrimSpace(c.OperatingStatus))
	acquirer := strings.TrimSpace(c.Raw.Lookup(colsAcquirer...))

	switch {
	case folded == "closed":
		return &domain.AcquisitionStatus{
			IsAcquiredOrClosed: true,
			Label:              withDateSuffix("Closed", c.Raw.Lookup(colsClosedDate...)),
			Color:              domain.StatusColorRed,
		}
	case folded == "acquired" || len(acquirer) > 1:
		label := "Acquired"
		if len(acquirer) > 1 {
			label += " by " + acquirer
		}
		return &domain.AcquisitionStatus{
			IsAcquiredOrClosed: true,
			Label:              withDateSuffix(label, c.Raw.Lookup(colsAcquiredDate...)),
			Color:              domain.StatusColorAmber,
		}
	default:
		return nil
	}
}

// DetectAll fills the Acquisition field of every company in place.
func DetectAll(companies []domain.ScoredCompany) {
	for i := range companies {
		companies[i].Acquisition = Status(companies[i])
	}
}

// withDateSuffix appends " MM/YYYY" when the date parses; an unparseable
// date omits the suffix entirely rather than failing.
func withDateSuffix(label, date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return label
	}
	for _, layout := range exitDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return label + " " + t.Format("01/2006")
		}
	}
	return label
}
