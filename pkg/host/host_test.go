package host

import (
	"errors"
	"testing"

	"github.com/nullrend/vsthost/pkg/abi"
)

func TestStateStringCoversEveryState(t *testing.T) {
	states := []State{
		StateLoaded, StateActivated, StateProcessing,
		StateProcessingEditorOpen, StateDeactivated, StateReleased,
	}
	for _, s := range states {
		if s.String() == "unknown" {
			t.Errorf("State(%d).String() = unknown", s)
		}
	}
}

func TestPluginErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &PluginError{Kind: ErrActivationFailed, Step: "set_active", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not see through PluginError.Unwrap")
	}
}

func TestPluginErrorInterfaceMissingMessage(t *testing.T) {
	err := &PluginError{Kind: ErrInterfaceMissing, IID: abi.IIDAudioProcessor}
	msg := err.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
}

func TestAllocatePluginIDMonotonicAndUnique(t *testing.T) {
	seen := make(map[PluginId]bool)
	var last PluginId
	for i := 0; i < 100; i++ {
		id := allocatePluginID()
		if id <= last {
			t.Fatalf("allocatePluginID() = %d, not greater than previous %d", id, last)
		}
		if seen[id] {
			t.Fatalf("duplicate PluginId %d", id)
		}
		seen[id] = true
		last = id
	}
}
