package factors

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrFactorNotFound indicates that no factor exists for the requested
// (category, item, subcategory) combination. Callers compare with
// errors.Is; the serving layer translates it into a client-facing 400.
const ErrFactorNotFound = constError("factor not found")

// ErrInvalidReferenceData indicates the embedded reference tables failed
// to parse or validate. This is a build defect, not a runtime condition.
const ErrInvalidReferenceData = constError("invalid reference data")
