package salary

import (
	"testing"

	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pctEntry(slug, v string) *ConfigurationEntry {
	return &ConfigurationEntry{Slug: slug, Percentage: lo.ToPtr(d(v))}
}

func fixedEntry(slug, v string) *ConfigurationEntry {
	return &ConfigurationEntry{Slug: slug, FixedAmount: lo.ToPtr(d(v))}
}

func defaultEntries() []*ConfigurationEntry {
	return []*ConfigurationEntry{
		pctEntry(SlugBasicSalary, "50"),
		pctEntry(SlugHRA, "40"),
		pctEntry(SlugEmployeeEPF, "12"),
		pctEntry(SlugEmployerEPF, "12"),
		pctEntry(SlugEmployeeESI, "0.75"),
		pctEntry(SlugEmployerESI, "3.25"),
		fixedEntry(SlugESILimit, "21000"),
		pctEntry(SlugEDLICharges, "0.5"),
		fixedEntry(SlugEDLIChargesLimit, "15000"),
		pctEntry(SlugAdministrationCharges, "0.5"),
		fixedEntry(SlugMedicalAllowance, "1250"),
		fixedEntry(SlugTransportAllowance, "1600"),
		fixedEntry(SlugFoodAllowance, "2200"),
	}
}

func TestNewConfiguration_Missing(t *testing.T) {
	entries := defaultEntries()[1:]
	_, err := NewConfiguration(entries)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidConfiguration(err))

	// a percentage slug stored as a fixed amount is unusable
	entries = append(entries, fixedEntry(SlugBasicSalary, "50"))
	_, err = NewConfiguration(entries)
	assert.True(t, ierr.IsInvalidConfiguration(err))
}

func TestConfiguration_Compute(t *testing.T) {
	cfg, err := NewConfiguration(defaultEntries())
	require.NoError(t, err)

	tests := []struct {
		name  string
		gross string
		want  map[string]string
	}{
		{
			name:  "under the esi limit",
			gross: "20000",
			want: map[string]string{
				"basic":    "10000",
				"hra":      "4000",
				"special":  "950",
				"epf":      "1200",
				"esi_ee":   "150",
				"esi_er":   "650",
				"edli":     "50",
				"admin":    "50",
				"takehome": "18650",
				"ctc":      "21950",
			},
		},
		{
			name:  "over the esi limit with capped edli",
			gross: "50000",
			want: map[string]string{
				"basic":    "25000",
				"hra":      "10000",
				"special":  "9950",
				"epf":      "3000",
				"esi_ee":   "0",
				"esi_er":   "0",
				"edli":     "75",
				"admin":    "125",
				"takehome": "47000",
				"ctc":      "53200",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := cfg.Compute(d(tt.gross))
			require.NoError(t, err)

			got := map[string]decimal.Decimal{
				"basic":    b.BasicSalary,
				"hra":      b.HRA,
				"special":  b.SpecialAllowance,
				"epf":      b.EmployeeEPF,
				"esi_ee":   b.EmployeeESI,
				"esi_er":   b.EmployerESI,
				"edli":     b.EDLICharges,
				"admin":    b.AdminCharges,
				"takehome": b.TakeHome,
				"ctc":      b.CTC,
			}
			for k, want := range tt.want {
				assert.True(t, d(want).Equal(got[k]), "%s: want %s got %s", k, want, got[k])
			}
			assert.True(t, b.EmployeeEPF.Equal(b.EmployerEPF))
		})
	}
}

func TestConfiguration_Compute_SmallGross(t *testing.T) {
	cfg, err := NewConfiguration(defaultEntries())
	require.NoError(t, err)

	b, err := cfg.Compute(d("8000"))
	require.NoError(t, err)
	assert.True(t, b.SpecialAllowance.IsZero())

	_, err = cfg.Compute(d("-1"))
	assert.True(t, ierr.IsValidation(err))
}
