package igdb

import "testing"

func TestQueryString(t *testing.T) {
	tests := []struct {
		name     string
		query    *Query
		expected string
	}{
		{
			name:     "empty selects everything",
			query:    NewQuery(),
			expected: "fields *;",
		},
		{
			name:     "search with filters",
			query:    NewQuery().Search("zelda").Fields("id", "name").Where("category = 0", "version_parent = null").Sort("rating", Desc).Limit(10),
			expected: `search "zelda"; fields id,name; where category = 0 & version_parent = null; sort rating desc; limit 10;`,
		},
		{
			name:     "offset and blank conditions",
			query:    NewQuery().Fields("name").Where("  ", "id = 1").Limit(5).Offset(10),
			expected: "fields name; where id = 1; limit 5; offset 10;",
		},
		{
			name:     "escaped search term",
			query:    NewQuery().Search(`say "hi" \o/`).Fields("id"),
			expected: `search "say \"hi\" \\o/"; fields id;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit    int
		def      int
		expected int
	}{
		{0, 10, 10},
		{-3, 20, 20},
		{1, 10, 1},
		{50, 10, 50},
		{51, 10, 50},
		{1000, 10, 50},
	}

	for _, tt := range tests {
		if got := clampLimit(tt.limit, tt.def); got != tt.expected {
			t.Errorf("clampLimit(%d, %d) = %d, want %d", tt.limit, tt.def, got, tt.expected)
		}
	}
}
