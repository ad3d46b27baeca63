package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomBoardDTO(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    CustomBoardDTO
		wantErr bool
	}{
		{"full", "width=12&height=10&mines=20", CustomBoardDTO{12, 10, 20}, false},
		{"unknown keys ignored", "width=9&height=9&mines=10&theme=dark", CustomBoardDTO{9, 9, 10}, false},
		{"missing mines", "width=9&height=9", CustomBoardDTO{}, true},
		{"non-numeric", "width=wide&height=9&mines=10", CustomBoardDTO{}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			values, err := url.ParseQuery(test.query)
			require.NoError(t, err)
			dto, err := ParseCustomBoardDTO(values)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, dto)
		})
	}
}

func TestParsePosition(t *testing.T) {
	values, err := url.ParseQuery("row=3&col=7")
	require.NoError(t, err)
	dto, err := ParsePosition(values)
	require.NoError(t, err)
	assert.Equal(t, PositionDTO{Row: 3, Col: 7}, dto)

	values, err = url.ParseQuery("row=3")
	require.NoError(t, err)
	_, err = ParsePosition(values)
	assert.Error(t, err)
}

func TestNewSessionDTO(t *testing.T) {
	s := testSession(t)
	dto := NewSessionDTO(s)
	assert.Equal(t, s.ID, dto.SessionID)
	assert.Equal(t, s.State, dto.State)
	assert.Len(t, dto.Grid, s.Difficulty.Height)
	assert.Len(t, dto.Grid[0], s.Difficulty.Width)
	assert.Equal(t, s.ID, dto.Statistics.SessionID)
}
