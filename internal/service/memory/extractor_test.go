package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantFound bool
		wantType  string
		wantValue string
	}{
		{
			name:      "name",
			query:     "My name is Alex",
			wantFound: true,
			wantType:  "name",
			wantValue: "alex",
		},
		{
			name:      "age",
			query:     "I am 29 years old",
			wantFound: true,
			wantType:  "age",
			wantValue: "29",
		},
		{
			name:      "location",
			query:     "i am from Warsaw",
			wantFound: true,
			wantType:  "location",
			wantValue: "warsaw",
		},
		{
			name:      "favorite",
			query:     "my favorite color is green",
			wantFound: true,
			wantType:  "favorite",
			wantValue: "green",
		},
		{
			name:      "likes",
			query:     "I really think I like hiking",
			wantFound: true,
			wantType:  "likes",
			wantValue: "hiking",
		},
		{
			name:      "occupation",
			query:     "i work as engineer",
			wantFound: true,
			wantType:  "occupation",
			wantValue: "engineer",
		},
		{
			name:      "custom remember",
			query:     "remember that my wifi password is hunter2",
			wantFound: true,
			wantType:  "custom",
			wantValue: "wifi password: hunter2",
		},
		{
			name:      "no fact",
			query:     "what is the capital of France",
			wantFound: false,
		},
		{
			name:      "empty",
			query:     "",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fact, found := Extract(tt.query)
			require.Equal(t, tt.wantFound, found)
			if !found {
				return
			}
			assert.Equal(t, tt.wantType, fact.Type)
			assert.Equal(t, tt.wantValue, fact.Value)
			assert.Contains(t, fact.Key, tt.wantType+"_")
		})
	}
}

func TestExtractKeyIsStable(t *testing.T) {
	first, found := Extract("my name is alex")
	require.True(t, found)
	second, found := Extract("my name is alex")
	require.True(t, found)
	assert.Equal(t, first.Key, second.Key)
}

func TestExtractDistinctValuesGetDistinctKeys(t *testing.T) {
	hiking, found := Extract("i like hiking")
	require.True(t, found)
	chess, found := Extract("i like chess")
	require.True(t, found)
	assert.NotEqual(t, hiking.Key, chess.Key)
}
