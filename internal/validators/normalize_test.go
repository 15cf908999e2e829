package validators

import (
	"testing"

	"github.com/MKhiriev/gsc-identity/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"+1 (555) 123-4567", "+15551234567", true},
		{"8.800.555.35.35", "88005553535", true},
		{"  555 1234 ", "5551234", true},
		{"1+2", "", false},
		{"GGF-GSC-25-11-00007", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizePhone(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeIdentifier("  Ada@Example.COM "))
	assert.Equal(t, "+15551234567", NormalizeIdentifier("+1 555 123 4567"))
	assert.Equal(t, "GGF-GSC-25-11-00007", NormalizeIdentifier(" GGF-GSC-25-11-00007 "))
}

func TestNormalizeRegisterRequest(t *testing.T) {
	got := NormalizeRegisterRequest(models.RegisterRequest{
		Name:   "  Ada ",
		Email:  " ADA@example.com",
		Phone:  "+1 555-123-4567",
		Gender: " Female ",
		Photo:  " photos/a.png ",
	})

	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "+15551234567", got.Phone)
	assert.Equal(t, "female", got.Gender)
	assert.Equal(t, "photos/a.png", got.Photo)
}

func TestNormalizeClaimsPatch(t *testing.T) {
	name, phone := " Bo ", "+1 555 000 1111"

	got := NormalizeClaimsPatch(models.ClaimsPatch{Name: &name, Phone: &phone})

	assert.Equal(t, "Bo", *got.Name)
	assert.Equal(t, "+15550001111", *got.Phone)
	assert.Nil(t, got.Photo)
	assert.Nil(t, got.Gender)
	assert.Equal(t, " Bo ", name, "input must not be mutated")
}
