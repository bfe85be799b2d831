package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicate(t *testing.T) {
	phoneDupe := errors.New("Error 1062 (23000): Duplicate entry '+15551234567-1' for key 'uq_profiles_hoa_phone'")
	slugDupe := errors.New("Error 1062 (23000): Duplicate entry 'maple-grove' for key 'uq_hoas_slug'")
	codeDupe := errors.New("Error 1062 (23000): Duplicate entry 'A1B2C3D4' for key 'uq_hoas_invitation_code'")

	// Any 1062 matches when no index is asked for.
	assert.True(t, isDuplicate(phoneDupe, ""))
	assert.True(t, isDuplicate(slugDupe, ""))

	// The index name discriminates between constraints on the same table.
	assert.True(t, isDuplicate(slugDupe, "uq_hoas_slug"))
	assert.False(t, isDuplicate(slugDupe, "uq_hoas_invitation_code"))
	assert.True(t, isDuplicate(codeDupe, "uq_hoas_invitation_code"))
	assert.False(t, isDuplicate(codeDupe, "uq_hoas_slug"))
	assert.True(t, isDuplicate(phoneDupe, "uq_profiles_hoa_phone"))

	// Drivers that render the message without the numeric code still match
	// on the duplicate-entry text.
	textOnly := errors.New("duplicate entry '+15551234567-1' for key 'uq_profiles_hoa_phone'")
	assert.True(t, isDuplicate(textOnly, "uq_profiles_hoa_phone"))

	// Non-duplicate failures never match, whatever index is asked for.
	assert.False(t, isDuplicate(nil, ""))
	assert.False(t, isDuplicate(errors.New("Error 1452 (23000): Cannot add or update a child row"), ""))
	assert.False(t, isDuplicate(errors.New("driver: bad connection"), "uq_hoas_slug"))
}
