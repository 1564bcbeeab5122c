package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/booking-api/internal/model"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	id := uuid.New()
	resp, err := svc.Generate(model.DoctorIdentity(id))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	identity, err := svc.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, identity.Role)
	assert.Equal(t, id, identity.SubjectID)
}

func TestGenerateRejectsUnknownRole(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.Generate(model.Identity{Role: "superuser", SubjectID: uuid.New()})
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	resp, err := issuer.Generate(model.PatientIdentity(uuid.New()))
	require.NoError(t, err)

	_, err = verifier.Validate(resp.Token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	resp, err := svc.Generate(model.AdminIdentity(uuid.New()))
	require.NoError(t, err)

	_, err = svc.Validate(resp.Token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}
