package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider is the embedded owner of a service listing.
type Provider struct {
	Email string `json:"email" bson:"email"`
	Extra Fields `json:"-" bson:",inline"`
}

type providerJSON Provider

// MarshalJSON flattens client supplied attributes next to the email.
func (p Provider) MarshalJSON() ([]byte, error) {
	return mergeJSON(providerJSON(p), p.Extra)
}

// Review is a rating entry embedded in its service.
type Review struct {
	Rating int       `json:"rating" bson:"rating"`
	Date   time.Time `json:"date" bson:"date"`
	Extra  Fields    `json:"-" bson:",inline"`
}

type reviewJSON Review

// MarshalJSON flattens client supplied attributes next to rating and date.
func (r Review) MarshalJSON() ([]byte, error) {
	return mergeJSON(reviewJSON(r), r.Extra)
}

// Service is a listed offering with its review history and aggregates.
type Service struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Provider      *Provider          `json:"provider,omitempty" bson:"provider,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	AverageRating float64            `json:"averageRating" bson:"averageRating"`
	ReviewCount   int                `json:"reviewCount" bson:"reviewCount"`
	Reviews       []Review           `json:"reviews" bson:"reviews"`
	Extra         Fields             `json:"-" bson:",inline"`
}

type serviceJSON Service

// MarshalJSON flattens the descriptive attributes next to the stored fields.
func (s Service) MarshalJSON() ([]byte, error) {
	if s.Reviews == nil {
		s.Reviews = []Review{}
	}
	return mergeJSON(serviceJSON(s), s.Extra)
}

// AggregateKeys are maintained by the review pipeline and never taken from
// client payloads.
var AggregateKeys = []string{"averageRating", "reviewCount", "reviews"}

// NewService builds a listing from a caller document. createdAt is kept when
// the caller sent a parseable date and stamped with now otherwise.
func NewService(doc Fields, now time.Time) *Service {
	svc := &Service{
		CreatedAt: now,
		Reviews:   []Review{},
		Extra:     doc.Without(append([]string{"_id", "provider", "createdAt"}, AggregateKeys...)...),
	}
	if t, ok := ParseTime(doc["createdAt"]); ok {
		svc.CreatedAt = t
	}
	if p, ok := nested(doc["provider"]); ok {
		svc.Provider = &Provider{
			Email: p.String("email"),
			Extra: p.Without("email"),
		}
	}
	return svc
}

// RatingStats returns the mean rating and the number of reviews.
func RatingStats(reviews []Review) (average float64, count int) {
	count = len(reviews)
	if count == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(count), count
}
