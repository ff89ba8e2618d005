package rbac

import "testing"

func TestDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"clinician", "risk:compute", true},
		{"clinician", "assessment:create", true},
		{"clinician", "assessment:view-all", false},
		{"auditor", "assessment:view-all", true},
		{"auditor", "assessment:create", false},
		{"admin", "anything:at_all", true},
		{"intruder", "risk:compute", false},
		{"", "risk:compute", false},
	}
	for _, cse := range cases {
		if got := c.Has(cse.role, cse.perm); got != cse.want {
			t.Fatalf("Has(%q,%q)=%v, want %v", cse.role, cse.perm, got, cse.want)
		}
	}
}

func TestAnyAndWildcardPrefix(t *testing.T) {
	c := NewChecker(map[string][]string{"ops": {"assessment:*"}})
	if !c.Has("ops", "assessment:view-all") {
		t.Fatalf("prefix wildcard should match")
	}
	if c.Has("ops", "users:list") {
		t.Fatalf("prefix wildcard must not match other prefixes")
	}
	if !c.Any("ops", "users:list", "assessment:create") {
		t.Fatalf("Any should match the second permission")
	}
}
