package storage

import "testing"

// Malformed credentials (no ":" separator) must not panic client creation
func TestCreateSVCIncompleteAuth(t *testing.T) {
	for _, auth := range []string{"", "key-only", "key:secret"} {
		bucket := Bucket{Name: "photos", AuthDetails: auth, Region: "us-east-1"}
		if svc := bucket.CreateSVC(); svc == nil {
			t.Errorf("auth %q: got nil client", auth)
		}
	}
}

func TestGetRemotePath(t *testing.T) {
	tests := []struct {
		bucketPath string
		path       string
		want       string
	}{
		{"", "user_1/album_2/3.jpg", "user_1/album_2/3.jpg"},
		{"galleries", "user_1/album_2/3.jpg", "galleries/user_1/album_2/3.jpg"},
		{"galleries/", "user_1/album_2/3.jpg", "galleries/user_1/album_2/3.jpg"},
	}
	for _, test := range tests {
		bucket := Bucket{Path: test.bucketPath}
		if got := bucket.GetRemotePath(test.path); got != test.want {
			t.Errorf("prefix %q: got %q, want %q", test.bucketPath, got, test.want)
		}
	}
}
