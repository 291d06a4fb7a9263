package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerb(t *testing.T) {
	tests := []struct {
		verb       Verb
		name       string
		sendsQuery bool
	}{
		{VerbGet, "GET", true},
		{VerbPost, "POST", false},
		{VerbPut, "PUT", false},
		{VerbPatch, "PATCH", false},
		{VerbDelete, "DELETE", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.verb.String())
			assert.True(t, tt.verb.Valid())
			assert.Equal(t, tt.sendsQuery, tt.verb.SendsQuery())
			assert.Equal(t, !tt.sendsQuery, tt.verb.HasBody())

			parsed, err := ParseVerb(" " + tt.name + " ")
			require.NoError(t, err)
			assert.Equal(t, tt.verb, parsed)
		})
	}

	assert.False(t, Verb(7).Valid())
	assert.False(t, Verb(7).HasBody())
	assert.Equal(t, "Verb(7)", Verb(7).String())

	parsed, err := ParseVerb("patch")
	require.NoError(t, err)
	assert.Equal(t, VerbPatch, parsed)

	_, err = ParseVerb("OPTIONS")
	assert.Error(t, err)
}
