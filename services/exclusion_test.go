package services

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedIDs(s ExclusionSet) []uint {
	ids := s.IDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestBuildExclusionSetMergesLikedAndSession(t *testing.T) {
	set, err := BuildExclusionSet([]uint{3}, "1,2,1")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, sortedIDs(set))
	assert.True(t, set.Contains(3))
	assert.False(t, set.Contains(4))
}

func TestParseExclude(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []uint
		wantErr string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "spaces and blanks", raw: " 4 , ,5,", want: []uint{4, 5}},
		{name: "non numeric", raw: "1,abc", wantErr: "valid integer IDs"},
		{name: "float", raw: "1.5", wantErr: "valid integer IDs"},
		{name: "non positive dropped", raw: "0,-3,7", want: []uint{7}},
		{name: "out of range dropped", raw: "99999999999999999999,-99999999999999999999,8", want: []uint{8}},
		{name: "out of range alone", raw: "99999999999999999999", want: nil},
		{name: "too long", raw: strings.Repeat("1", MaxExcludeLength+1), wantErr: "too long"},
		{name: "too many", raw: strings.TrimSuffix(strings.Repeat("1,", MaxExcludeIDs+1), ","), wantErr: "Too many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExclude(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExcludeAcceptsExactlyMaxIDs(t *testing.T) {
	raw := strings.TrimSuffix(strings.Repeat("9,", MaxExcludeIDs), ",")
	ids, err := ParseExclude(raw)
	require.NoError(t, err)
	assert.Len(t, ids, MaxExcludeIDs)
}
