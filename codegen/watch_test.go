package codegen

import "testing"

func TestRelevantChange(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"demo/types.go", true},
		{"/abs/path/models/user.go", true},
		{"demo/types_test.go", false},
		{"demo/zz_generated_random.go", false},
		{"demo/zz_generated_rand.go", false},
		{"demo/notes.txt", false},
		{"demo/randgen.ini", false},
	}
	for _, tt := range tests {
		if got := relevantChange(tt.path); got != tt.want {
			t.Errorf("relevantChange(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
