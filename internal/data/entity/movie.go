package entity

// RatingStatus tracks the lifecycle of the background rating enrichment.
type RatingStatus string

const (
	RatingStatusPending  RatingStatus = "PENDING"
	RatingStatusEnriched RatingStatus = "ENRICHED"
	RatingStatusNotFound RatingStatus = "NOT_FOUND"
	RatingStatusError    RatingStatus = "ERROR"
)

// Movie is the stored record. Rating is set only by enrichment and is
// non-nil only while RatingStatus is ENRICHED.
type Movie struct {
	Base
	Title        string       `db:"title"`
	Director     *string      `db:"director"`
	ReleaseYear  *int         `db:"release_year"`
	Rating       *float64     `db:"rating"`
	RatingStatus RatingStatus `db:"rating_status"`
}
