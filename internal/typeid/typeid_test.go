package typeid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDsCarryPrefix(t *testing.T) {
	ent := NewEntityID()
	sess := NewSessionID()

	assert.True(t, strings.HasPrefix(ent, "ent_"), ent)
	assert.True(t, strings.HasPrefix(sess, "sess_"), sess)
	assert.NotEqual(t, ent, NewEntityID())
}

func TestValidate(t *testing.T) {
	id := NewSessionID()
	require.NoError(t, Validate(id, PrefixSession))

	err := Validate(id, PrefixEntity)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected prefix")

	assert.Error(t, Validate("not-an-id", PrefixSession))
}
