package grass

import "testing"

func TestFieldCacheReusesField(t *testing.T) {
	c := NewFieldCache(DefaultOptions())

	if _, ok := c.Key(); ok {
		t.Error("new cache reports a cached field")
	}

	a := c.Get(100, 30)
	b := c.Get(100, 30)
	if a != b {
		t.Error("same key returned a different field")
	}
	if c.Builds() != 1 {
		t.Errorf("Builds() = %d, want 1", c.Builds())
	}

	key, ok := c.Key()
	if !ok || key != (FieldKey{BladeCount: 100, FieldSize: 30}) {
		t.Errorf("Key() = %v, %v", key, ok)
	}
}

func TestFieldCacheRebuildsOnKeyChange(t *testing.T) {
	c := NewFieldCache(DefaultOptions())

	tests := []struct {
		count      int
		size       float32
		wantBuilds int
	}{
		{10, 30, 1},
		{10, 30, 1},
		{20, 30, 2},
		{20, 15, 3},
		{20, 15, 3},
		{10, 30, 4}, // only the latest field is kept
	}

	for _, tt := range tests {
		f := c.Get(tt.count, tt.size)
		if f.BladeCount != tt.count || f.FieldSize != tt.size {
			t.Errorf("Get(%d, %v) returned field for (%d, %v)", tt.count, tt.size, f.BladeCount, f.FieldSize)
		}
		if f.VertexCount() != tt.count*BladeVertexCount {
			t.Errorf("Get(%d, %v): vertex count %d", tt.count, tt.size, f.VertexCount())
		}
		if c.Builds() != tt.wantBuilds {
			t.Errorf("after Get(%d, %v): Builds() = %d, want %d", tt.count, tt.size, c.Builds(), tt.wantBuilds)
		}
	}
}
