package utils

import "testing"

func TestValidateLogin(t *testing.T) {
	valid := []string{"alice", "User42", "abcd"}
	for _, login := range valid {
		if err := ValidateLogin(login); err != nil {
			t.Errorf("ValidateLogin(%q) = %v", login, err)
		}
	}

	invalid := []string{"", "abc", "user name", "юзер1234", "user@host"}
	for _, login := range invalid {
		if err := ValidateLogin(login); err == nil {
			t.Errorf("ValidateLogin(%q) accepted", login)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{"Password1", "aB3defgh", "LongEnough99"}
	for _, password := range valid {
		if err := ValidatePassword(password); err != nil {
			t.Errorf("ValidatePassword(%q) = %v", password, err)
		}
	}

	invalid := []string{"", "Short1a", "alllower1", "ALLUPPER1", "NoDigitsHere"}
	for _, password := range invalid {
		if err := ValidatePassword(password); err == nil {
			t.Errorf("ValidatePassword(%q) accepted", password)
		}
	}
}

func TestGenerateToken(t *testing.T) {
	a := GenerateToken()
	b := GenerateToken()

	if len(a) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Error("consecutive tokens are identical")
	}
}
