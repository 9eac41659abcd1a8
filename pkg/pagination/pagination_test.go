package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/document-registry/pkg/pagination"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	var cfg pagination.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.DefaultPageSize != 100 {
		t.Errorf("DefaultPageSize = %d, want 100", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 500 {
		t.Errorf("MaxPageSize = %d, want 500", cfg.MaxPageSize)
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "10")

	cfg := pagination.Config{}
	env := &pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_SIZE"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d, want 10", cfg.DefaultPageSize)
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 50, MaxPageSize: 10}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() should reject default larger than max")
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 50}

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"empty", "", 1, 20},
		{"explicit", "page=3&pageSize=5", 3, 5},
		{"clamped", "page=0&pageSize=999", 1, 50},
		{"garbage", "page=x", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, cfg)

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestNewPageResult_Links(t *testing.T) {
	self, _ := url.Parse("http://drc.local/api/enkelvoudiginformatieobjecten?bronorganisatie=000000000&page=2")

	result := pagination.NewPageResult([]int{1, 2}, 6, pagination.PageRequest{Page: 2, PageSize: 2}, self)

	if result.Count != 6 {
		t.Errorf("Count = %d, want 6", result.Count)
	}
	if result.Next == nil || *result.Next != "http://drc.local/api/enkelvoudiginformatieobjecten?bronorganisatie=000000000&page=3" {
		t.Errorf("Next = %v", result.Next)
	}
	if result.Previous == nil || *result.Previous != "http://drc.local/api/enkelvoudiginformatieobjecten?bronorganisatie=000000000&page=1" {
		t.Errorf("Previous = %v", result.Previous)
	}
}

func TestNewPageResult_LastPage(t *testing.T) {
	result := pagination.NewPageResult[int](nil, 0, pagination.PageRequest{Page: 1, PageSize: 20}, &url.URL{Path: "/x"})

	if result.Next != nil || result.Previous != nil {
		t.Error("single page should have no links")
	}
	if result.Results == nil {
		t.Error("Results should be an empty slice, not nil")
	}
}
