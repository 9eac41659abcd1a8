package date_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/JaimeStill/document-registry/pkg/date"
)

func TestDate_JSON(t *testing.T) {
	d := date.New(2024, time.March, 9)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-03-09"` {
		t.Errorf("Marshal() = %s", data)
	}

	var back date.Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []string{`"2024-13-01"`, `"09-03-2024"`, `20240309`, `"2024-03-09T10:00:00Z"`}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			var d date.Date
			if err := json.Unmarshal([]byte(input), &d); err == nil {
				t.Errorf("Unmarshal(%s) should fail", input)
			}
		})
	}
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"time", time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC), "2024-03-09"},
		{"string", "2023-12-31", "2023-12-31"},
		{"bytes", []byte("2022-01-01"), "2022-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d date.Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Scan() = %s, want %s", d, tt.want)
			}
		})
	}

	var d date.Date
	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}
