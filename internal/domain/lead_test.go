package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLead_Validate(t *testing.T) {
	tests := []struct {
		name  string
		email string
		ok    bool
	}{
		{"plain address", "ana@example.com", true},
		{"surrounding spaces", "  ana@example.com ", true},
		{"missing", "", false},
		{"no at sign", "not-an-email", false},
		{"no domain", "ana@", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Lead{Name: "Ana", Email: tt.email}).Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestClientRequirements_Validate(t *testing.T) {
	valid := func() *ClientRequirements {
		return &ClientRequirements{
			Contact:     ContactInfo{Name: "Ana", Email: "ana@example.com"},
			ProjectInfo: ProjectInfo{ProjectName: "Shop"},
		}
	}
	require.NoError(t, valid().Validate())

	r := valid()
	r.Contact.Email = "ana at example"
	assert.Equal(t, KindValidation, KindOf(r.Validate()))

	r = valid()
	r.ProjectInfo.ProjectName = "  "
	assert.Equal(t, KindValidation, KindOf(r.Validate()))
}

func TestParseActor(t *testing.T) {
	for _, a := range Actors {
		got, err := ParseActor(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseActor("bogus")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}
