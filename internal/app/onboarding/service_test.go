package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"
)

type fakeAccountPort struct {
	updateErr error
	calls     []profileCall
}

type profileCall struct {
	userID      string
	username    string
	displayName string
}

func (f *fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	f.calls = append(f.calls, profileCall{userID: userID, username: username, displayName: displayName})
	return f.updateErr
}

func TestOnboardNewUser_SetsFriendlyName(t *testing.T) {
	accounts := &fakeAccountPort{}
	service := NewService(accounts, rand.New(rand.NewSource(1)))

	name, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}

	if len(accounts.calls) != 1 {
		t.Fatalf("Expected 1 profile update, got %d", len(accounts.calls))
	}
	call := accounts.calls[0]
	if call.userID != "user-1" {
		t.Fatalf("Expected update for user-1, got %s", call.userID)
	}
	if call.username != name || call.displayName != name {
		t.Fatalf("Expected username and display name %q, got %q/%q", name, call.username, call.displayName)
	}

	pattern := regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+\d{4}$`)
	if !pattern.MatchString(name) {
		t.Fatalf("Name %q does not look like AdjectiveNounNNNN", name)
	}
}

func TestOnboardNewUser_ProfileUpdateFailure(t *testing.T) {
	accounts := &fakeAccountPort{updateErr: errors.New("update failed")}
	service := NewService(accounts, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when profile update fails")
	}
}

func TestOnboardNewUser_DeterministicWithSeededRand(t *testing.T) {
	first := NewService(&fakeAccountPort{}, rand.New(rand.NewSource(7)))
	second := NewService(&fakeAccountPort{}, rand.New(rand.NewSource(7)))

	a, err := first.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	b, err := second.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if a != b {
		t.Fatalf("Same seed produced different names: %q vs %q", a, b)
	}
}
