package core_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/burrow/pkg/core"
	"github.com/aretw0/burrow/pkg/models"
)

func TestInit_Identity(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		m := models.NewBaseModel()
		require.Len(t, m.ID, 36)
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestInit_Timestamps(t *testing.T) {
	m := models.NewBaseModel()

	assert.Equal(t, m.CreatedAt, m.UpdatedAt)
	assert.WithinDuration(t, time.Now(), m.CreatedAt, time.Second)
	assert.Equal(t, time.UTC, m.CreatedAt.Location())
}

func TestEncode(t *testing.T) {
	r := models.NewReview()
	r.PlaceID = "place-1"
	r.UserID = "user-1"
	r.Text = "quiet and clean"

	rec := core.Encode(r)

	assert.Equal(t, "Review", rec[core.ClassKey])
	assert.Equal(t, r.ID, rec[core.IDKey])
	assert.Equal(t, r.CreatedAt.Format("2006-01-02T15:04:05.000000"), rec[core.CreatedAtKey])
	assert.Equal(t, r.UpdatedAt.Format("2006-01-02T15:04:05.000000"), rec[core.UpdatedAtKey])
	assert.Equal(t, "place-1", rec["place_id"])
	assert.Equal(t, "user-1", rec["user_id"])
	assert.Equal(t, "quiet and clean", rec["text"])
}

func TestEncode_DefaultsAndExtras(t *testing.T) {
	r := models.NewReview()
	require.NoError(t, core.Set(r, "mood", "happy"))

	rec := core.Encode(r)

	assert.Equal(t, "", rec["place_id"])
	assert.Equal(t, "happy", rec["mood"])
	assert.Len(t, rec, 8)
}

func TestDecode_RoundTrip(t *testing.T) {
	p := models.NewPlace()
	p.Name = "Loft"
	p.NumberRooms = 3
	p.Latitude = 37.77
	p.Touch()

	class, fields := core.Encode(p).Split()
	require.Equal(t, "Place", class)
	_, hasTag := fields[core.ClassKey]
	require.False(t, hasTag)

	var got models.Place
	require.NoError(t, core.Decode(&got, fields))

	assert.Equal(t, p.ID, got.ID)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, p.UpdatedAt.Equal(got.UpdatedAt))
	assert.Equal(t, "Loft", got.Name)
	assert.Equal(t, 3, got.NumberRooms)
	assert.InDelta(t, 37.77, got.Latitude, 1e-9)
	assert.Empty(t, got.Extras)
}

func TestDecode_Example(t *testing.T) {
	var m models.BaseModel
	err := core.Decode(&m, core.Fields{
		"id":         "abc-123",
		"created_at": "2023-01-01T00:00:00.000000",
		"updated_at": "2023-01-01T00:00:00.000000",
		"note":       "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc-123", m.ID)
	assert.True(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Equal(m.CreatedAt))
	assert.True(t, m.CreatedAt.Equal(m.UpdatedAt))
	assert.Equal(t, "hi", m.Extras["note"])
}

func TestDecode_RecordWithTypeTag(t *testing.T) {
	rec := core.Record{
		"__class__":  "BaseModel",
		"id":         "abc-123",
		"created_at": "2024-02-29T12:30:45.123456",
		"updated_at": "2024-02-29T12:30:45.123456",
		"test":       "my_test",
	}

	e, err := models.DefaultCatalog().FromRecord(rec)
	require.NoError(t, err)

	m, ok := e.(*models.BaseModel)
	require.True(t, ok)
	assert.NotContains(t, m.Extras, core.ClassKey)
	assert.Equal(t, "my_test", m.Extras["test"])
	assert.Equal(t, 123456000, m.CreatedAt.Nanosecond())
}

func TestDecode_Empty(t *testing.T) {
	var r models.Review
	require.NoError(t, core.Decode(&r, nil))
	assert.Len(t, r.ID, 36)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields core.Fields
		target error
	}{
		{
			name:   "missing id",
			fields: core.Fields{"created_at": "2023-01-01T00:00:00.000000"},
			target: core.ErrMissingID,
		},
		{
			name:   "non-text id",
			fields: core.Fields{"id": 42},
			target: core.ErrMissingID,
		},
		{
			name:   "type tag as field",
			fields: core.Fields{"id": "x", "__class__": "Review"},
			target: core.ErrReservedKey,
		},
		{
			name:   "timestamp of wrong type",
			fields: core.Fields{"id": "x", "updated_at": 12},
			target: core.ErrInvalidValue,
		},
		{
			name:   "nested extra",
			fields: core.Fields{"id": "x", "tags": []any{"a", "b"}},
			target: core.ErrInvalidValue,
		},
		{
			name:   "object extra",
			fields: core.Fields{"id": "x", "owner": map[string]any{"id": "u"}},
			target: core.ErrInvalidValue,
		},
		{
			name:   "declared field of wrong type",
			fields: core.Fields{"id": "x", "text": 3.5},
			target: core.ErrInvalidValue,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r models.Review
			err := core.Decode(&r, tc.fields)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestDecode_ReplacesExtras(t *testing.T) {
	var m models.BaseModel
	require.NoError(t, core.Decode(&m, core.Fields{"id": "a", "note": "hi"}))
	require.NoError(t, core.Decode(&m, core.Fields{"id": "b", "size": 3}))

	assert.Equal(t, "b", m.ID)
	assert.Equal(t, map[string]any{"size": 3}, m.Extras)
}

func TestDecode_ScalarExtras(t *testing.T) {
	var m models.BaseModel
	err := core.Decode(&m, core.Fields{"id": "a", "flag": true, "n": 2.5, "empty": nil})
	require.NoError(t, err)
	assert.Len(t, m.Extras, 3)

	assert.ErrorIs(t, core.Set(&m, "list", []string{"x"}), core.ErrInvalidValue)
}

func TestDecode_TruncatesToMicroseconds(t *testing.T) {
	fine := time.Date(2023, 1, 1, 0, 0, 0, 123456789, time.UTC)
	for name, v := range map[string]any{
		"text":  "2023-01-01T00:00:00.1234567",
		"value": fine,
	} {
		t.Run(name, func(t *testing.T) {
			var m models.BaseModel
			require.NoError(t, core.Decode(&m, core.Fields{"id": "x", "created_at": v, "updated_at": v}))
			assert.Equal(t, 123456000, m.CreatedAt.Nanosecond())

			_, fields := core.Encode(&m).Split()
			var back models.BaseModel
			require.NoError(t, core.Decode(&back, fields))
			assert.True(t, m.CreatedAt.Equal(back.CreatedAt), "%s != %s", m.CreatedAt, back.CreatedAt)
			assert.True(t, m.UpdatedAt.Equal(back.UpdatedAt))
		})
	}
}

func TestDecode_MalformedTimestamp(t *testing.T) {
	var m models.BaseModel
	err := core.Decode(&m, core.Fields{"id": "x", "created_at": "yesterday"})

	var parseErr *time.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "created_at")
}

func TestParseTime_Variants(t *testing.T) {
	want := time.Date(2023, 5, 6, 7, 8, 9, 500000000, time.UTC)
	for _, s := range []string{
		"2023-05-06T07:08:09.500000",
		"2023-05-06T07:08:09.5",
		"2023-05-06T09:08:09.5+02:00",
	} {
		got, err := core.ParseTime(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), "%s parsed as %s", s, got)
	}

	got, err := core.ParseTime("2023-05-06T07:08:09")
	require.NoError(t, err)
	assert.Equal(t, "2023-05-06T07:08:09.000000", core.FormatTime(got))
}

func TestSet(t *testing.T) {
	p := models.NewPlace()

	require.NoError(t, core.Set(p, "max_guest", "4"))
	require.NoError(t, core.Set(p, "longitude", 122.4))
	require.NoError(t, core.Set(p, "wifi", "yes"))
	assert.Equal(t, 4, p.MaxGuest)
	assert.InDelta(t, 122.4, p.Longitude, 1e-9)
	assert.Equal(t, "yes", p.Extras["wifi"])

	for _, name := range []string{"id", "created_at", "updated_at", "__class__"} {
		assert.ErrorIs(t, core.Set(p, name, "x"), core.ErrReservedKey, name)
	}
	assert.ErrorIs(t, core.Set(p, "max_guest", "many"), core.ErrInvalidValue)
	assert.ErrorIs(t, core.Set(p, "max_guest", 2.5), core.ErrInvalidValue)
}

func TestRender(t *testing.T) {
	r := models.NewReview()
	r.Text = "hello"

	want := fmt.Sprintf("[Review] (%s) map[created_at:%v id:%s place_id: text:hello updated_at:%v user_id:]",
		r.ID, r.CreatedAt, r.ID, r.UpdatedAt)
	assert.Equal(t, want, r.String())
	assert.Equal(t, want, core.Render(r))
}

func TestAttributeTypes(t *testing.T) {
	types := core.AttributeTypes(models.NewPlace())

	assert.Equal(t, core.KindString, types["id"])
	assert.Equal(t, core.KindTime, types["created_at"])
	assert.Equal(t, core.KindTime, types["updated_at"])
	assert.Equal(t, core.KindInt, types["number_rooms"])
	assert.Equal(t, core.KindFloat, types["latitude"])
	assert.Equal(t, core.KindString, types["description"])
	assert.Len(t, types, 13)
}
