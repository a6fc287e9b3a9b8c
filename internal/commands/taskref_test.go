package commands

import "testing"

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{"valid", []string{"3"}, 3, ""},
		{"first", []string{"1"}, 1, ""},
		{"missing", nil, 0, "task reference required"},
		{"too many", []string{"1", "2"}, 0, "too many arguments: 1 2"},
		{"non-numeric", []string{"abc"}, 0, "invalid task reference: abc"},
		{"zero", []string{"0"}, 0, "invalid task reference: 0"},
		{"negative", []string{"-1"}, 0, "invalid task reference: -1"},
		{"float", []string{"1.5"}, 0, "invalid task reference: 1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskRef(tt.args)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("got %d, want %d", got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}
