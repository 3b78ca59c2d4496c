package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Extension", KeyExtension, "apriltag", Extension("apriltag")},
		{"SourceDir", KeySourceDir, "/src", SourceDir("/src")},
		{"BuildDir", KeyBuildDir, "/build", BuildDir("/build")},
		{"OutputDir", KeyOutputDir, "/lib", OutputDir("/lib")},
		{"Step", KeyStep, "configure", Step("configure")},
		{"Version", KeyVersion, "v3.27.4", Version("v3.27.4")},
		{"Count", KeyCount, "2", Count(2)},
		{"Args", KeyArgs, "-DA=1 -DB=2", Args([]string{"-DA=1", "-DB=2"})},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}
	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}
