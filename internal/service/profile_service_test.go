package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileService_UpdateProfile(t *testing.T) {
	repos := newRepos()
	svc := NewProfileService(repos.Users, repos.BodyMetrics, fixedClock(tuesday), time.UTC, nil)
	ctx := context.Background()
	user := createUser(t, repos, "p@example.com", false)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "p", profile.Name)
	assert.Empty(t, profile.PasswordHash)

	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: "Paula", DateOfBirth: "31/12/1990"})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: " Paula ", Gender: "female", Bio: "runner", DateOfBirth: "1990-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "Paula", updated.Name)

	stored, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paula", stored.Name)
	assert.Equal(t, "female", stored.Gender)
	assert.Equal(t, "runner", stored.Bio)
	assert.Equal(t, "1990-12-31", stored.DateOfBirth)

	_, err = svc.GetProfile(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileService_Measurements(t *testing.T) {
	repos := newRepos()
	// 23:30 UTC is already the next day at UTC+2.
	loc := time.FixedZone("UTC+2", 2*60*60)
	late := time.Date(2024, time.January, 2, 23, 30, 0, 0, time.UTC)
	svc := NewProfileService(repos.Users, repos.BodyMetrics, fixedClock(late), loc, nil)
	ctx := context.Background()
	user := createUser(t, repos, "m@example.com", false)

	latest, err := svc.LatestMeasurement(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = svc.LogMeasurement(ctx, user.ID, MeasurementInput{Weight: 80, MuscleMass: 35, FatPercentage: 0, Height: 180})
	assert.ErrorIs(t, err, ErrValidation)

	first, err := svc.LogMeasurement(ctx, user.ID, MeasurementInput{Weight: 80, MuscleMass: 35, FatPercentage: 18, Height: 180})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", first.Date)

	second, err := svc.LogMeasurement(ctx, user.ID, MeasurementInput{Weight: 79.5, MuscleMass: 35.2, FatPercentage: 17.5, Height: 180})
	require.NoError(t, err)

	latest, err = svc.LatestMeasurement(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}
