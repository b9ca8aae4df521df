package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "positional and flag",
			input: "1 -b 3 -d",
			want:  []string{"1", "-b", "3", "-d"},
		},
		{
			name:  "quoted arguments",
			input: `greet --name "hello world"`,
			want:  []string{"greet", "--name", "hello world"},
		},
		{
			name:  "multiple quotes",
			input: `copy "first file" 'second file'`,
			want:  []string{"copy", "first file", "second file"},
		},
		{
			name:  "escaped quotes",
			input: `echo \"hello\"`,
			want:  []string{"echo", `"hello"`},
		},
		{
			name:  "long option with value",
			input: "--far=10   arg",
			want:  []string{"--far=10", "arg"},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
		{
			name:  "only spaces",
			input: "   ",
			want:  []string{},
		},
		{
			name:  "environment variables are not expanded",
			input: "echo $HOME",
			want:  []string{"echo", "$HOME"},
		},
		{
			name:    "unterminated quote",
			input:   `echo "unterminated`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
