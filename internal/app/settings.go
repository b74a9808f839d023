package app

import (
	"context"

	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/store"
)

// UpdateSettings applies a settings patch to the in-memory record
// immediately, then persists it. A persistence failure is reported but the
// in-memory change is not rolled back: settings are low-stakes and
// user-correctable, so lenient consistency is the documented choice here.
func (a *App) UpdateSettings(ctx context.Context, patch store.SettingsPatch) error {
	if patch.UpdatedAt == nil {
		now := a.now()
		patch.UpdatedAt = &now
	}
	if !a.Settings.Patch(patch) {
		return errors.NewPrecondition("settings not loaded")
	}

	if _, err := a.remote.PatchSettings(ctx, a.sessionID, patch); err != nil {
		a.log.Warn().Err(err).Msg("settings persistence failed; in-memory value kept")
		return errors.NewPersistence("update settings", err)
	}
	return nil
}

// CompleteOnboarding marks the onboarding walkthrough as done.
func (a *App) CompleteOnboarding(ctx context.Context) error {
	done := true
	return a.UpdateSettings(ctx, store.SettingsPatch{OnboardingCompleted: &done})
}
