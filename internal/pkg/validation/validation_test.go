package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
}

type Inner struct {
	Name string `form:"name" validate:"required"`
	At   *point `form:"coordinates"`
}

type outer struct {
	Inner
	Code    string   `form:"code" validate:"required,code"`
	Phone   string   `form:"supervisor_contact" validate:"phone"`
	Email   string   `form:"supervisor_email" validate:"email"`
	IDs     []string `form:"venue_ids" validate:"min=1"`
	Count   int      `form:"capacity" validate:"gte=1"`
	Ignored string   `form:"-"`
}

func TestStruct_WireNamesAndMessages(t *testing.T) {
	errs := Struct(outer{
		Inner: Inner{At: &point{Lat: 91}},
		Code:  "!",
		Phone: "call me",
		Email: "nope",
	})

	assert.Equal(t, "is required", errs["name"])
	assert.Equal(t, "must be at most 90", errs["coordinates.lat"])
	assert.Equal(t, "must be 2-50 letters, digits, '-' or '_'", errs["code"])
	assert.Equal(t, "must be a valid phone number", errs["supervisor_contact"])
	assert.Equal(t, "must be a valid email address", errs["supervisor_email"])
	assert.Equal(t, "needs at least 1 entries", errs["venue_ids"])
	assert.Equal(t, "must be at least 1", errs["capacity"])
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(outer{
		Inner: Inner{Name: "North"},
		Code:  "CL-01",
		Phone: "+91 98765 43210",
		Email: "a@example.com",
		IDs:   []string{"x"},
		Count: 3,
	})
	assert.Empty(t, errs)
}

func TestErrors(t *testing.T) {
	errs := Errors{}
	errs.Add("name", "is required")
	errs.Add("name", "ignored")
	errs.Add("code", "is required")
	assert.Equal(t, "code is required; name is required", errs.Error())
}

func TestPatterns(t *testing.T) {
	assert.True(t, CodePattern.MatchString("Z_1"))
	assert.False(t, CodePattern.MatchString("-Z"))
	assert.True(t, PhonePattern.MatchString("9876543210"))
	assert.False(t, PhonePattern.MatchString("12345"))
}
