package loader

import (
	"errors"
	"testing"
)

func TestLoadErrorUnwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := &LoadError{Path: "/tmp/missing.vst3", Kind: KindOpenFailed, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not see through LoadError.Unwrap")
	}
	if got := err.Error(); got == "" {
		t.Error("Error() returned empty string")
	}
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{KindOpenFailed, KindEntryPointMissing, KindInitFailed, KindFactoryMissing} {
		if k.String() == "" {
			t.Errorf("Kind(%d).String() is empty", k)
		}
	}
}

func TestLoadErrorWithoutCause(t *testing.T) {
	err := &LoadError{Path: "/tmp/missing.vst3", Kind: KindFactoryMissing}
	if err.Unwrap() != nil {
		t.Error("Unwrap() should be nil when Err is unset")
	}
	if err.Error() == "" {
		t.Error("Error() returned empty string")
	}
}
