package utils

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"
)

func TestSha512String(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		},
		{
			name: "abc",
			in:   "abc",
			want: "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sha512String(tt.in); got != tt.want {
				t.Errorf("Sha512String(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRandSaltLength(t *testing.T) {
	if a, b := RandSalt(60), RandSalt(60); a == b {
		t.Error("two salts should not match")
	}
	if len(RandSalt(60)) == 0 {
		t.Error("empty salt")
	}
}

func TestCreateThumb(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	var in bytes.Buffer
	if err := jpeg.Encode(&in, src, nil); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	result, err := CreateThumb(50, &in, &out)
	if err != nil {
		t.Fatalf("CreateThumb: %v", err)
	}
	if result.OldX != 200 || result.OldY != 100 {
		t.Errorf("original size = %dx%d, want 200x100", result.OldX, result.OldY)
	}
	if result.NewX != 50 || result.NewY != 25 {
		t.Errorf("thumb size = %dx%d, want 50x25", result.NewX, result.NewY)
	}
	if int64(out.Len()) != result.ThumbSize || result.ThumbSize == 0 {
		t.Errorf("thumb bytes = %d, reported %d", out.Len(), result.ThumbSize)
	}
}

func TestCreateThumbBadInput(t *testing.T) {
	var out bytes.Buffer
	if _, err := CreateThumb(50, bytes.NewReader([]byte("not an image")), &out); err == nil {
		t.Error("expected decode error")
	}
}
