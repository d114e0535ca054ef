package statutory

import "time"

// CreateRatesRequest submits a new statutory rate table. The server assigns
// the next version number; the payload's Version field is ignored.
type CreateRatesRequest struct {
	Rates Rates `json:"rates"`
}

func (r *CreateRatesRequest) Validate() error {
	if r.Rates.EffectiveFrom.IsZero() {
		return ErrMissingEffectiveDate
	}
	return r.Rates.Validate()
}

// RatesVersion is the listing view of a stored table.
type RatesVersion struct {
	Version       int       `json:"version"`
	EffectiveFrom time.Time `json:"effective_from"`
}
