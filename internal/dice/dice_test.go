package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dicecloud-sheet/internal/dice"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		want   dice.Die
		wantOK bool
	}{
		{name: "plain", expr: "1d8", want: dice.Die{Size: 8, Count: 1}, wantOK: true},
		{name: "with modifier", expr: "2d6 + strength.modifier", want: dice.Die{Size: 6, Count: 2}, wantOK: true},
		{name: "implicit count", expr: "d12", want: dice.Die{Size: 12, Count: 1}, wantOK: true},
		{name: "upper case", expr: "3D4", want: dice.Die{Size: 4, Count: 3}, wantOK: true},
		{name: "first term wins", expr: "1d10 + 1d6", want: dice.Die{Size: 10, Count: 1}, wantOK: true},
		{name: "flat number", expr: "5", wantOK: false},
		{name: "empty", expr: "", wantOK: false},
		{name: "variable only", expr: "dexterity.modifier", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dice.Find(tt.expr)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	size, err := dice.ParseSize("d10")
	require.NoError(t, err)
	assert.Equal(t, 10, size)

	size, err = dice.ParseSize(" 8 ")
	require.NoError(t, err)
	assert.Equal(t, 8, size)

	_, err = dice.ParseSize("dx")
	assert.Error(t, err)

	_, err = dice.ParseSize("d0")
	assert.Error(t, err)
}

func TestDie_String(t *testing.T) {
	assert.Equal(t, "2d6", dice.Die{Size: 6, Count: 2}.String())
}
