package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catsync/backend/internal/domain/shared"
)

func TestRef_TenantRoundtrip(t *testing.T) {
	id := uuid.New()
	ref := TenantRef(id)
	assert.Equal(t, "p_"+id.String(), ref)

	parsed, err := ParseRef(ref)
	require.NoError(t, err)
	assert.Equal(t, SourceTenant, parsed.Source)
	assert.Equal(t, id, parsed.TenantID)
}

func TestRef_AffiliateRoundtrip(t *testing.T) {
	ref := AffiliateRef(982347)
	assert.Equal(t, "a_982347", ref)

	parsed, err := ParseRef(ref)
	require.NoError(t, err)
	assert.Equal(t, SourceAffiliate, parsed.Source)
	assert.Equal(t, int64(982347), parsed.AffiliateID)
}

func TestRef_ParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"982347",
		"x_982347",
		"p_not-a-uuid",
		"a_not-a-number",
		"a_",
		"p_",
	}
	for _, ref := range cases {
		_, err := ParseRef(ref)
		require.Error(t, err, "ref %q", ref)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REF", domainErr.Code)
	}
}
