package version

import (
	"sort"
	"testing"
)

func TestGetMinorVersion(t *testing.T) {
	if got := GetMinorVersion("0.3.1"); got != "0.3" {
		t.Errorf("Expected 0.3, got %s", got)
	}
	if got := GetMinorVersion("1"); got != "0.0" {
		t.Errorf("Expected 0.0, got %s", got)
	}
}

func TestGetSchemaVersion(t *testing.T) {
	if got := GetSchemaVersion("0.3.7"); got != "0.3.0" {
		t.Errorf("Expected 0.3.0, got %s", got)
	}
}

func TestVersionComparison(t *testing.T) {
	if !IsVersionGreaterThan("0.2.0", "0.1.9") {
		t.Errorf("Expected 0.2.0 > 0.1.9")
	}
	if IsVersionGreaterThan("0.1.0", "0.1.0") {
		t.Errorf("Expected 0.1.0 not greater than itself")
	}
	if !IsVersionGreaterOrEqualThan("0.1.0", "0.1.0") {
		t.Errorf("Expected 0.1.0 >= 0.1.0")
	}
}

func TestSortVersion(t *testing.T) {
	versions := []string{"0.10.0", "0.2.0", "0.9.1"}
	sort.Sort(SortVersion(versions))
	expected := []string{"0.2.0", "0.9.1", "0.10.0"}
	for i := range expected {
		if versions[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, versions)
			break
		}
	}
}
