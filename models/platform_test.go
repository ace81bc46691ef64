package models

import "testing"

func TestParsePlatform(t *testing.T) {
	testCases := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{in: "Instagram", want: PlatformInstagram},
		{in: "Twitter", want: PlatformTwitter},
		{in: "instagram", wantErr: true},
		{in: "Facebook", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.in, func(t *testing.T) {
			got, err := ParsePlatform(testCase.in)
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", testCase.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != testCase.want {
				t.Fatalf("expected %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestParseHumorTypes(t *testing.T) {
	if _, err := ParseHumorTypes(nil); err == nil {
		t.Fatalf("expected error for empty selection")
	}

	if _, err := ParseHumorTypes([]string{"Funny", "Edgy"}); err == nil {
		t.Fatalf("expected error for unknown humor type")
	}

	got, err := ParseHumorTypes([]string{"Funny", "Sarcastic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != HumorFunny || got[1] != HumorSarcastic {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestOnboarded(t *testing.T) {
	var u *User
	if u.Onboarded() {
		t.Fatalf("nil user must not be onboarded")
	}

	u = &User{ID: "u1"}
	if u.Onboarded() {
		t.Fatalf("user without username must not be onboarded")
	}

	u.Username = "casey"
	if !u.Onboarded() {
		t.Fatalf("user with username must be onboarded")
	}
}
