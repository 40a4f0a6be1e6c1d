package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopStageHooks{}
	s.OnStageStart(ctx, "run-1", "decode")
	s.OnStageComplete(ctx, "run-1", "decode", 3, time.Millisecond, nil)
	s.OnStageComplete(ctx, "run-1", "annotate", 0, time.Millisecond, errors.New("boom"))

	d := NoopDatasetHooks{}
	d.OnDatasetLoad(ctx, "vault.toml", "toml", time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Stages().(NoopStageHooks); !ok {
		t.Error("Stages() should return NoopStageHooks by default")
	}
	if _, ok := Dataset().(NoopDatasetHooks); !ok {
		t.Error("Dataset() should return NoopDatasetHooks by default")
	}

	customStages := &testStageHooks{}
	SetStageHooks(customStages)
	if Stages() != customStages {
		t.Error("SetStageHooks should set custom hooks")
	}

	customDataset := &testDatasetHooks{}
	SetDatasetHooks(customDataset)
	if Dataset() != customDataset {
		t.Error("SetDatasetHooks should set custom hooks")
	}

	Reset()
	if _, ok := Stages().(NoopStageHooks); !ok {
		t.Error("Reset() should restore NoopStageHooks")
	}
	if _, ok := Dataset().(NoopDatasetHooks); !ok {
		t.Error("Reset() should restore NoopDatasetHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testStageHooks{}
	SetStageHooks(custom)
	SetStageHooks(nil)

	if Stages() != custom {
		t.Error("SetStageHooks(nil) should be ignored")
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetStageHooks(&testStageHooks{})
		}()
		go func() {
			defer wg.Done()
			Stages().OnStageStart(context.Background(), "run", "decode")
		}()
	}
	wg.Wait()
}

type testStageHooks struct{ NoopStageHooks }
type testDatasetHooks struct{ NoopDatasetHooks }
