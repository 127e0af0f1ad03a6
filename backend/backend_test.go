package backend

import (
	"testing"

	"github.com/gogpu/termatlas"
)

// fakeBackend is a minimal Backend for registry tests.
type fakeBackend struct {
	name    string
	renders int
}

func (f *fakeBackend) Render(*termatlas.RenderingPayload) error { f.renders++; return nil }
func (f *fakeBackend) RequiresContinuousRedraw() bool           { return false }
func (f *fakeBackend) WaitUntilCanRender()                      {}

func TestRegistryRegisterAndGet(t *testing.T) {
	Register("test-backend", func() Backend {
		return &fakeBackend{name: "test-backend"}
	})
	t.Cleanup(func() { Unregister("test-backend") })

	if !IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	b := Get("test-backend")
	if b == nil {
		t.Fatal("Get(test-backend) returned nil")
	}
	if fb, ok := b.(*fakeBackend); !ok || fb.name != "test-backend" {
		t.Errorf("Get returned %T, want the registered fake", b)
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	if b := Get("nonexistent"); b != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryAvailable(t *testing.T) {
	Register("avail-test", func() Backend { return &fakeBackend{} })
	t.Cleanup(func() { Unregister("avail-test") })

	found := false
	for _, name := range Available() {
		if name == "avail-test" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Available() should include 'avail-test'")
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("gone-soon", func() Backend { return &fakeBackend{} })
	Unregister("gone-soon")

	if IsRegistered("gone-soon") {
		t.Error("gone-soon should be unregistered")
	}
}

func TestRegistryDefaultPriority(t *testing.T) {
	soft := &fakeBackend{name: BackendSoft}
	gpu := &fakeBackend{name: BackendGPU}
	Register(BackendSoft, func() Backend { return soft })
	Register(BackendGPU, func() Backend { return gpu })
	t.Cleanup(func() {
		Unregister(BackendSoft)
		Unregister(BackendGPU)
	})

	if b := Default(); b != gpu {
		t.Error("Default() should prefer the gpu backend when registered")
	}

	Unregister(BackendGPU)
	if b := Default(); b != soft {
		t.Error("Default() should fall back to the soft backend")
	}
}

func TestRegistryDefaultSkipsNilFactories(t *testing.T) {
	soft := &fakeBackend{name: BackendSoft}
	Register(BackendGPU, func() Backend { return nil })
	Register(BackendSoft, func() Backend { return soft })
	t.Cleanup(func() {
		Unregister(BackendGPU)
		Unregister(BackendSoft)
	})

	if b := Default(); b != soft {
		t.Error("Default() should skip factories returning nil")
	}
}

func TestRegistryMustDefault(t *testing.T) {
	Register("must-test", func() Backend { return &fakeBackend{} })
	t.Cleanup(func() { Unregister("must-test") })

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	if b := MustDefault(); b == nil {
		t.Error("MustDefault() returned nil")
	}
}
