package account_test

import (
	"testing"

	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func validCredentials(t *testing.T) account.Credentials {
	t.Helper()

	credentials, err := account.NewCredentials("merchant@example.com", testPasswordHash)
	require.NoError(t, err)
	return credentials
}

func TestNewCredentials(t *testing.T) {
	t.Run("should create credentials and normalize email to lowercase", func(t *testing.T) {
		credentials, err := account.NewCredentials("Merchant@Example.COM", testPasswordHash)

		require.NoError(t, err)
		require.NoError(t, credentials.Validate())
		assert.Equal(t, "merchant@example.com", credentials.Email())
		assert.Equal(t, testPasswordHash, credentials.PasswordHash())
	})

	t.Run("should fail with malformed email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email"} {
			_, err := account.NewCredentials(email, testPasswordHash)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should fail with empty password hash", func(t *testing.T) {
		_, err := account.NewCredentials("merchant@example.com", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail validation for zero value credentials", func(t *testing.T) {
		var credentials account.Credentials

		err := credentials.Validate()

		require.Error(t, err)
		assert.Equal(t, account.ErrCredentialsAreNotConstructed, err)
	})
}

func TestNewSeller(t *testing.T) {
	validID := kernel.NewUUID()
	validZipcode, _ := kernel.NewZipcode("560001")

	t.Run("should create unverified seller with valid parameters", func(t *testing.T) {
		s, err := account.NewSeller(validID, "Acme Traders", validZipcode, validCredentials(t))

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.ID().IsEqual(validID))
		assert.Equal(t, "Acme Traders", s.Name())
		assert.True(t, s.Zipcode().IsEqual(validZipcode))
		assert.False(t, s.EmailVerified())
	})

	t.Run("should fall back to the unknown zipcode when none is given", func(t *testing.T) {
		var zipcode kernel.Zipcode

		s, err := account.NewSeller(validID, "Acme Traders", zipcode, validCredentials(t))

		require.NoError(t, err)
		require.NoError(t, s.Zipcode().Validate())
		assert.True(t, s.Zipcode().IsEqual(kernel.UnknownZipcode))
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		s, err := account.NewSeller(validID, "", validZipcode, validCredentials(t))

		require.Error(t, err)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, account.ErrNameIsRequired)
	})

	t.Run("should fail with unconstructed credentials", func(t *testing.T) {
		var credentials account.Credentials

		s, err := account.NewSeller(validID, "Acme Traders", validZipcode, credentials)

		require.Error(t, err)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, account.ErrCredentialsAreNotConstructed)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		var invalidZipcode kernel.Zipcode
		var credentials account.Credentials

		s, err := account.NewSeller(invalidID, "", invalidZipcode, credentials)

		require.Error(t, err)
		assert.Nil(t, s)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.ErrorIs(t, err, account.ErrNameIsRequired)
		assert.ErrorIs(t, err, account.ErrCredentialsAreNotConstructed)
	})
}

func TestSeller_VerifyEmail(t *testing.T) {
	zipcode, _ := kernel.NewZipcode("560001")

	t.Run("should verify unverified seller", func(t *testing.T) {
		s, _ := account.NewSeller(kernel.NewUUID(), "Acme Traders", zipcode, validCredentials(t))

		err := s.VerifyEmail()

		require.NoError(t, err)
		assert.True(t, s.EmailVerified())
	})

	t.Run("should fail to verify twice", func(t *testing.T) {
		s, _ := account.NewSeller(kernel.NewUUID(), "Acme Traders", zipcode, validCredentials(t))
		require.NoError(t, s.VerifyEmail())

		err := s.VerifyEmail()

		require.Error(t, err)
		assert.Equal(t, account.ErrEmailAlreadyVerified, err)
	})
}

func TestRestoreSeller(t *testing.T) {
	t.Run("should restore verified seller", func(t *testing.T) {
		id := kernel.NewUUID()
		zipcode, _ := kernel.NewZipcode("110001")

		s, err := account.RestoreSeller(id, "Acme Traders", zipcode, validCredentials(t), true)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.EmailVerified())
	})
}

func TestNewDeliveryPartner(t *testing.T) {
	validID := kernel.NewUUID()
	zip1, _ := kernel.NewZipcode("560001")
	zip2, _ := kernel.NewZipcode("560068")
	serviceable := []kernel.Zipcode{zip1, zip2}

	t.Run("should create unverified partner with valid parameters", func(t *testing.T) {
		p, err := account.NewDeliveryPartner(validID, "FastShip", validCredentials(t), serviceable, 5)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(validID))
		assert.Equal(t, "FastShip", p.Name())
		assert.Equal(t, serviceable, p.ServiceableZipcodes())
		assert.Equal(t, 5, p.MaxCapacity())
		assert.Equal(t, 0, p.ActiveShipments())
		assert.Equal(t, 5, p.AvailableCapacity())
		assert.False(t, p.EmailVerified())
	})

	t.Run("should accept zero capacity", func(t *testing.T) {
		p, err := account.NewDeliveryPartner(validID, "FastShip", validCredentials(t), serviceable, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, p.AvailableCapacity())
		assert.False(t, p.CanAccept(zip1))
	})

	t.Run("should fail with negative capacity", func(t *testing.T) {
		p, err := account.NewDeliveryPartner(validID, "FastShip", validCredentials(t), serviceable, -1)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail with no serviceable zipcodes", func(t *testing.T) {
		p, err := account.NewDeliveryPartner(validID, "FastShip", validCredentials(t), nil, 5)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, account.ErrServiceableZipcodesAreRequired)
	})

	t.Run("should return a copy of serviceable zipcodes", func(t *testing.T) {
		p, _ := account.NewDeliveryPartner(validID, "FastShip", validCredentials(t), serviceable, 5)

		zipcodes := p.ServiceableZipcodes()
		zipcodes[0] = kernel.UnknownZipcode

		assert.Equal(t, serviceable, p.ServiceableZipcodes())
	})
}

func TestDeliveryPartner_CanServe(t *testing.T) {
	zip1, _ := kernel.NewZipcode("560001")
	zip2, _ := kernel.NewZipcode("560068")
	outside, _ := kernel.NewZipcode("110001")

	p, err := account.NewDeliveryPartner(
		kernel.NewUUID(), "FastShip", validCredentials(t), []kernel.Zipcode{zip1, zip2}, 5,
	)
	require.NoError(t, err)

	t.Run("should serve declared zipcodes", func(t *testing.T) {
		assert.True(t, p.CanServe(zip1))
		assert.True(t, p.CanServe(zip2))
	})

	t.Run("should not serve undeclared zipcode", func(t *testing.T) {
		assert.False(t, p.CanServe(outside))
	})
}

func TestDeliveryPartner_Capacity(t *testing.T) {
	zip, _ := kernel.NewZipcode("560001")
	serviceable := []kernel.Zipcode{zip}

	t.Run("should compute available capacity from restored active count", func(t *testing.T) {
		p, err := account.RestoreDeliveryPartner(
			kernel.NewUUID(), "FastShip", validCredentials(t), serviceable, 5, 3, true,
		)

		require.NoError(t, err)
		assert.Equal(t, 3, p.ActiveShipments())
		assert.Equal(t, 2, p.AvailableCapacity())
		assert.True(t, p.CanAccept(zip))
	})

	t.Run("should refuse new work at full capacity", func(t *testing.T) {
		p, err := account.RestoreDeliveryPartner(
			kernel.NewUUID(), "FastShip", validCredentials(t), serviceable, 5, 5, true,
		)

		require.NoError(t, err)
		assert.Equal(t, 0, p.AvailableCapacity())
		assert.False(t, p.CanAccept(zip))
	})

	t.Run("should clamp available capacity when limit drops below active count", func(t *testing.T) {
		p, err := account.RestoreDeliveryPartner(
			kernel.NewUUID(), "FastShip", validCredentials(t), serviceable, 5, 4, true,
		)
		require.NoError(t, err)

		require.NoError(t, p.UpdateMaxCapacity(2))

		assert.Equal(t, 0, p.AvailableCapacity())
		assert.False(t, p.CanAccept(zip))
	})

	t.Run("should fail to restore with negative active count", func(t *testing.T) {
		p, err := account.RestoreDeliveryPartner(
			kernel.NewUUID(), "FastShip", validCredentials(t), serviceable, 5, -1, true,
		)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliveryPartner_UpdateServiceableZipcodes(t *testing.T) {
	zip1, _ := kernel.NewZipcode("560001")
	zip2, _ := kernel.NewZipcode("110001")

	t.Run("should replace service areas", func(t *testing.T) {
		p, _ := account.NewDeliveryPartner(
			kernel.NewUUID(), "FastShip", validCredentials(t), []kernel.Zipcode{zip1}, 5,
		)

		err := p.UpdateServiceableZipcodes([]kernel.Zipcode{zip2})

		require.NoError(t, err)
		assert.False(t, p.CanServe(zip1))
		assert.True(t, p.CanServe(zip2))
	})

	t.Run("should fail to clear service areas", func(t *testing.T) {
		p, _ := account.NewDeliveryPartner(
			kernel.NewUUID(), "FastShip", validCredentials(t), []kernel.Zipcode{zip1}, 5,
		)

		err := p.UpdateServiceableZipcodes(nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, account.ErrServiceableZipcodesAreRequired)
		assert.True(t, p.CanServe(zip1))
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("should parse defined roles", func(t *testing.T) {
		for _, name := range []string{"seller", "partner"} {
			role, err := account.RoleFromString(name)

			require.NoError(t, err)
			require.NoError(t, role.Validate())
			assert.Equal(t, name, role.String())
		}
	})

	t.Run("should fail for unknown role names", func(t *testing.T) {
		for _, name := range []string{"", "admin", "Seller"} {
			_, err := account.RoleFromString(name)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}
