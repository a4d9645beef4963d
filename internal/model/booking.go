package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a user's reservation against a service. Price is stored as the
// client sent it, string or number.
type Booking struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ServiceID     primitive.ObjectID `json:"serviceId" bson:"serviceId"`
	ProviderEmail string             `json:"providerEmail,omitempty" bson:"providerEmail,omitempty"`
	UserEmail     string             `json:"userEmail,omitempty" bson:"userEmail,omitempty"`
	Price         interface{}        `json:"price,omitempty" bson:"price,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	Extra         Fields             `json:"-" bson:",inline"`
}

var bookingReserved = []string{"_id", "serviceId", "providerEmail", "userEmail", "price", "createdAt"}

// NewBooking builds a booking for serviceID from a caller document.
func NewBooking(doc Fields, serviceID primitive.ObjectID, now time.Time) *Booking {
	return &Booking{
		ServiceID:     serviceID,
		ProviderEmail: doc.String("providerEmail"),
		UserEmail:     doc.String("userEmail"),
		Price:         doc["price"],
		CreatedAt:     now,
		Extra:         doc.Without(bookingReserved...),
	}
}

type bookingJSON Booking

// MarshalJSON flattens client supplied attributes next to the stored fields.
func (b Booking) MarshalJSON() ([]byte, error) {
	return mergeJSON(bookingJSON(b), b.Extra)
}

// BookingFilter narrows booking counts and revenue sums. Empty fields match
// everything.
type BookingFilter struct {
	ProviderEmail string
	UserEmail     string
}
