package crypto_test

import (
	"strings"
	"testing"

	"crowdship/internal/adapters/out/crypto"
	"crowdship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher, err := crypto.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	require.NoError(t, hasher.Compare(hash, "s3cret-pass"))
	require.ErrorIs(t, hasher.Compare(hash, "wrong-pass"), errs.ErrUnauthenticated)
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	hasher, err := crypto.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	first, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	second, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher, err := crypto.NewBcryptHasher(0)
	require.NoError(t, err)

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, crypto.DefaultCost, cost)
}

func TestBcryptHasher_Rejects(t *testing.T) {
	_, err := crypto.NewBcryptHasher(99)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	hasher, err := crypto.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	_, err = hasher.Hash(strings.Repeat("x", 73))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.Error(t, hasher.Compare("not-a-hash", "s3cret-pass"))
}
