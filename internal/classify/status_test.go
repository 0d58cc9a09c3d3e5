package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturescope/pkg/contracts/domain"
)

func company(status string, pairs ...string) domain.ScoredCompany {
	rec := domain.NewRawRecord(len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Set(pairs[i], pairs[i+1])
	}
	return domain.ScoredCompany{OperatingStatus: status, Raw: rec}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		company   domain.ScoredCompany
		wantNil   bool
		wantLabel string
		wantColor domain.StatusColor
	}{
		{
			name:    "active company has no status",
			company: company("Active"),
			wantNil: true,
		},
		{
			name:      "closed with parseable date",
			company:   company("Closed", "Closed Date", "2023-06-15"),
			wantLabel: "Closed 06/2023",
			wantColor: domain.StatusColorRed,
		},
		{
			name:      "closed with unparseable date omits suffix",
			company:   company("Closed", "Closed Date", "sometime last year"),
			wantLabel: "Closed",
			wantColor: domain.StatusColorRed,
		},
		{
			name:      "closed without date",
			company:   company("closed"),
			wantLabel: "Closed",
			wantColor: domain.StatusColorRed,
		},
		{
			name:      "acquired status only",
			company:   company("Acquired"),
			wantLabel: "Acquired",
			wantColor: domain.StatusColorAmber,
		},
		{
			name:      "acquirer named",
			company:   company("Acquired", "Acquired By", "MegaCorp", "Acquired Date", "Jan 5, 2022"),
			wantLabel: "Acquired by MegaCorp 01/2022",
			wantColor: domain.StatusColorAmber,
		},
		{
			name:      "acquirer implies acquisition even when status says active",
			company:   company("Active", "Acquired By", "MegaCorp"),
			wantLabel: "Acquired by MegaCorp",
			wantColor: domain.StatusColorAmber,
		},
		{
			name:    "single character acquirer ignored",
			company: company("Active", "Acquired By", "-"),
			wantNil: true,
		},
		{
			name:      "closed wins over acquirer",
			company:   company("Closed", "Acquired By", "MegaCorp"),
			wantLabel: "Closed",
			wantColor: domain.StatusColorRed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Status(tt.company)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.IsAcquiredOrClosed)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantColor, got.Color)
		})
	}
}

func TestDetectAll(t *testing.T) {
	companies := []domain.ScoredCompany{
		company("Active"),
		company("Closed"),
	}

	DetectAll(companies)

	assert.Nil(t, companies[0].Acquisition)
	require.NotNil(t, companies[1].Acquisition)
	assert.Equal(t, domain.StatusColorRed, companies[1].Acquisition.Color)
}
