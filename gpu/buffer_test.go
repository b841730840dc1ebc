// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "testing"

func TestBufferObjectIndexWidth(t *testing.T) {
	b := NewBufferObject(ElementArrayBuffer, StaticDraw)
	b.SetIndices([]uint32{0, 1, 0x10002})

	narrow := b.bytes(false)
	if len(narrow) != 6 {
		t.Fatalf("narrow encoding is %d bytes, want 6", len(narrow))
	}
	// 0x10002 truncates to 0x0002 in 16-bit little endian.
	if narrow[4] != 0x02 || narrow[5] != 0x00 {
		t.Errorf("truncated index bytes = % x, want 02 00", narrow[4:6])
	}

	wide := b.bytes(true)
	if len(wide) != 12 {
		t.Fatalf("wide encoding is %d bytes, want 12", len(wide))
	}
	if wide[8] != 0x02 || wide[9] != 0x00 || wide[10] != 0x01 || wide[11] != 0x00 {
		t.Errorf("wide index bytes = % x, want 02 00 01 00", wide[8:12])
	}
}

func TestBufferObjectVertexBytes(t *testing.T) {
	b := NewBufferObject(ArrayBuffer, DynamicDraw)
	b.SetFloats([]float32{1})
	got := b.bytes(true)
	// float32(1) is 0x3f800000, little endian.
	want := []byte{0x00, 0x00, 0x80, 0x3f}
	if len(got) != 4 {
		t.Fatalf("encoding is %d bytes, want 4", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bytes = % x, want % x", got, want)
		}
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
}
