package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRatingStats(t *testing.T) {
	avg, count := RatingStats(nil)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, count)

	avg, count = RatingStats([]Review{{Rating: 5}, {Rating: 3}, {Rating: 4}})
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 3, count)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   interface{}
		want time.Time
		ok   bool
	}{
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2025-03-01T10:30", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"2025-03-01T10:30:00Z", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{float64(0), time.Unix(0, 0).UTC(), true},
		{"yesterday", time.Time{}, false},
		{nil, time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseTime(tt.in)
		assert.Equal(t, tt.ok, ok, "input %v", tt.in)
		assert.True(t, tt.want.Equal(got), "input %v: got %v", tt.in, got)
	}
}

func TestNewUser_DropsReservedKeys(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	u := NewUser(Fields{
		"email":    " a@example.com ",
		"role":     "admin",
		"password": "secret",
		"name":     "Ada",
	}, now)

	assert.Equal(t, "a@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, now, u.CreatedAt)
	assert.Equal(t, Fields{"name": "Ada"}, u.Extra)
}

func TestUser_MarshalJSONFlattensExtra(t *testing.T) {
	u := User{
		Email:        "a@example.com",
		Role:         RoleUser,
		PasswordHash: "hash",
		Extra:        Fields{"name": "Ada", "email": "ignored@example.com"},
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Ada", out["name"])
	assert.Equal(t, "a@example.com", out["email"])
	assert.NotContains(t, out, "passwordHash")
	assert.NotContains(t, out, "Extra")
}

func TestNewService(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(Fields{
		"_id":           "client-id",
		"title":         "Deep clean",
		"averageRating": 5.0,
		"reviews":       []interface{}{map[string]interface{}{"rating": 5.0}},
		"provider":      map[string]interface{}{"email": "pro@example.com", "name": "Pro"},
	}, now)

	assert.True(t, svc.ID.IsZero())
	assert.Equal(t, now, svc.CreatedAt)
	assert.Equal(t, 0.0, svc.AverageRating)
	assert.Equal(t, 0, svc.ReviewCount)
	assert.Empty(t, svc.Reviews)
	assert.Equal(t, Fields{"title": "Deep clean"}, svc.Extra)
	require.NotNil(t, svc.Provider)
	assert.Equal(t, "pro@example.com", svc.Provider.Email)
	assert.Equal(t, Fields{"name": "Pro"}, svc.Provider.Extra)
}

func TestService_MarshalJSONEmptyReviews(t *testing.T) {
	raw, err := json.Marshal(Service{Extra: Fields{"title": "Plumbing"}})
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, []interface{}{}, out["reviews"])
	assert.Equal(t, "Plumbing", out["title"])
	assert.NotContains(t, out, "provider")
}

func TestBooking_BSONRoundTripKeepsExtra(t *testing.T) {
	sid := primitive.NewObjectID()
	b := NewBooking(Fields{"price": "49.99", "userEmail": "u@example.com", "slot": "morning"}, sid, time.Now().UTC())

	raw, err := bson.Marshal(b)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, sid, doc["serviceId"])
	assert.Equal(t, "49.99", doc["price"])
	assert.Equal(t, "morning", doc["slot"])
	assert.NotContains(t, doc, "_id")
}
