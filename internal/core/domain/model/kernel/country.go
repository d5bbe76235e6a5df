package kernel

import (
	"fmt"
	"strings"

	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"

	"golang.org/x/text/language"
)

// ErrCountryIsNotConstructed is returned when validating a zero-value Country.
var ErrCountryIsNotConstructed = errs.NewValueIsRequiredError("country must be created via NewCountry")

// Country is an ISO 3166-1 country. It is stored and rendered as its alpha-2 code
// ("US", "EG"); NewCountry also accepts alpha-3 and numeric codes.
type Country struct {
	region language.Region
	guard  guard.ConstructorGuard
}

// NewCountry parses a country code. Macro-regions such as "150" (Europe) and
// unknown codes are rejected.
func NewCountry(code string) (Country, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Country{}, errs.NewValueIsRequiredError("country")
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return Country{}, errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%q is not a country code: %w", code, err))
	}
	if !region.IsCountry() {
		return Country{}, errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%q is not a country", code))
	}

	return Country{region: region, guard: guard.NewConstructorGuard()}, nil
}

func (c Country) Validate() error {
	return c.guard.Validate(ErrCountryIsNotConstructed)
}

// Code returns the ISO 3166-1 alpha-2 code.
func (c Country) Code() string {
	if c.Validate() != nil {
		return ""
	}
	return c.region.String()
}

func (c Country) String() string {
	return c.Code()
}

func (c Country) IsEqual(other Country) bool {
	return c.region == other.region
}
