package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errGone = New(http.StatusNotFound, "venue not found")

func TestWrapMatchesSentinel(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(cause, errGone.Code, errGone.Message)

	assert.ErrorIs(t, err, errGone)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, New(http.StatusNotFound, "zone not found"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("lookup: %w", errGone)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
