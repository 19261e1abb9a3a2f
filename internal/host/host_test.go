package host

import (
	"strings"
	"testing"
)

func TestParseLocales(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name: "locale database format",
			input: "aa_DJ.UTF-8 UTF-8\n" +
				"en_GB.UTF-8 UTF-8\n" +
				"en_GB ISO-8859-1\n",
			want: []string{"aa_DJ.UTF-8", "en_GB.UTF-8", "en_GB"},
		},
		{
			name: "comments and blank lines skipped",
			input: "# SUPPORTED locales\n" +
				"\n" +
				"de_DE.UTF-8 UTF-8\n" +
				"   \n",
			want: []string{"de_DE.UTF-8"},
		},
		{
			name:  "leading whitespace trimmed",
			input: "  fr_FR.UTF-8 UTF-8\n",
			want:  []string{"fr_FR.UTF-8"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLocales(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("parseLocales: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("locale[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
