package auth

import (
	"testing"
	"time"
)

func TestSession_IsGuest(t *testing.T) {
	s := Session{Role: RoleGuest}
	if !s.IsGuest() {
		t.Fatalf("expected guest")
	}
	if (Session{Role: RoleUser}).IsGuest() {
		t.Fatalf("did not expect guest")
	}
}

func TestIdentity_SimpleFields(t *testing.T) {
	id := Identity{UserID: "u", Email: "e", ExpiresAt: time.Now().Add(time.Hour)}
	if id.UserID != "u" || id.Email != "e" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestAuthData_Authorized(t *testing.T) {
	cases := []struct {
		name string
		in   AuthData
		want bool
	}{
		{"logged in", AuthData{IsLoggedIn: true}, true},
		{"share token only", AuthData{HasShareToken: true}, true},
		{"both", AuthData{IsLoggedIn: true, HasShareToken: true}, true},
		{"neither", AuthData{}, false},
		{"loading does not grant", AuthData{IsLoading: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Authorized(); got != tc.want {
				t.Fatalf("Authorized() = %v, want %v", got, tc.want)
			}
		})
	}
}
