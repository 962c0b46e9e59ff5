package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStationID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		errMsg  string
	}{
		{name: "onestop stop id", id: "s-ud91xepqe7-kloogaranna"},
		{name: "placeholder token", id: "LILLEKYLA"},
		{name: "id with tilde and colon", id: "s-ud9d4~tallinn:1"},
		{name: "empty ID", id: "", wantErr: true, errMsg: "id cannot be empty"},
		{name: "ID too long", id: strings.Repeat("a", 101), wantErr: true, errMsg: "id too long (max 100 characters)"},
		{name: "ID with markup", id: "s-abc<script>", wantErr: true, errMsg: "id contains invalid characters"},
		{name: "ID with SQL injection attempt", id: "s-abc'; DROP TABLE stops; --", wantErr: true, errMsg: "id contains invalid characters"},
		{name: "ID with path traversal", id: "../../../etc/passwd", wantErr: true, errMsg: "id contains invalid characters"},
		{name: "ID with space", id: "s abc", wantErr: true, errMsg: "id contains invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStationID(tt.id)
			if tt.wantErr {
				assert.EqualError(t, err, tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateLatitude(59.42484))
	assert.NoError(t, ValidateLatitude(-90))
	assert.Error(t, ValidateLatitude(90.1))
	assert.NoError(t, ValidateLongitude(24.72806))
	assert.Error(t, ValidateLongitude(-180.5))
}

func TestValidateRadius(t *testing.T) {
	assert.NoError(t, ValidateRadius(800))
	assert.EqualError(t, ValidateRadius(0), "radius must be positive")
	assert.EqualError(t, ValidateRadius(10001), "radius too large (max 10000 meters)")
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Lilleküla", SanitizeInput("  <b>Lilleküla</b> "))
	assert.Equal(t, "", SanitizeInput("<br/>"))
}
