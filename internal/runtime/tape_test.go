package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
)

const blank = domain.Symbol('_')

func TestTape_InitialContents(t *testing.T) {
	tape := runtime.NewTape(blank, domain.SymbolsOf("abc"))

	assert.Equal(t, 0, tape.Head())
	assert.Equal(t, domain.Symbol('a'), tape.Read())
	assert.Equal(t, "abc", domain.Join(tape.Contents()))
}

func TestTape_EmptyInputReadsBlank(t *testing.T) {
	tape := runtime.NewTape(blank, nil)

	assert.Empty(t, tape.Contents())
	assert.Equal(t, blank, tape.Read())
	assert.Equal(t, "_", domain.Join(tape.Contents()))
}

func TestTape_WriteThenRead(t *testing.T) {
	tape := runtime.NewTape(blank, domain.SymbolsOf("a"))

	tape.Write('x')
	assert.Equal(t, domain.Symbol('x'), tape.Read())

	tape.Move(domain.Left)
	tape.Move(domain.Left)
	tape.Write('y')
	assert.Equal(t, domain.Symbol('y'), tape.Read())
	assert.Equal(t, -2, tape.Head())
}

func TestTape_UnvisitedCellsAreBlank(t *testing.T) {
	tape := runtime.NewTape(blank, domain.SymbolsOf("ab"))

	for i := 0; i < 5; i++ {
		tape.Move(domain.Right)
	}
	assert.Equal(t, blank, tape.Read())

	for i := 0; i < 12; i++ {
		tape.Move(domain.Left)
	}
	assert.Equal(t, -7, tape.Head())
	assert.Equal(t, blank, tape.Read())

	assert.Equal(t, "_______ab____", domain.Join(tape.Contents()))
	assert.Equal(t, -7, tape.Left())
}

func TestTape_GrowthPreservesSymbols(t *testing.T) {
	tape := runtime.NewTape(blank, nil)

	// Write a marker every other cell while walking left, forcing repeated growth.
	for i := 0; i < 64; i++ {
		if i%2 == 0 {
			tape.Write(domain.Symbol('a' + i%26))
		}
		tape.Move(domain.Left)
	}
	// Walk back to the origin and then far to the right.
	for i := 0; i < 64; i++ {
		tape.Move(domain.Right)
	}
	for i := 0; i < 40; i++ {
		tape.Move(domain.Right)
		tape.Write('r')
	}
	for i := 0; i < 40; i++ {
		tape.Move(domain.Left)
	}

	assert.Equal(t, 0, tape.Head())
	assert.Equal(t, domain.Symbol('a'), tape.Read())
	for i := 0; i < 62; i++ {
		tape.Move(domain.Left)
		want := blank
		if (i+1)%2 == 0 {
			want = domain.Symbol('a' + (i+1)%26)
		}
		assert.Equal(t, want, tape.Read(), "position %d", -(i + 1))
	}
}

func TestTape_MoveDoesNotTouch(t *testing.T) {
	tape := runtime.NewTape(blank, domain.SymbolsOf("ab"))

	tape.Move(domain.Left)
	tape.Move(domain.Left)
	tape.Move(domain.Right)
	tape.Move(domain.Right)

	assert.Equal(t, "ab", domain.Join(tape.Contents()))
	assert.Equal(t, 2, tape.Len())
}
