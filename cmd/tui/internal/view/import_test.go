package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
)

func TestImportModel_Resolution(t *testing.T) {
	fresh := finance.PaymentParams{Description: "Lighting fixtures", Amount: 300_000}
	deposit := finance.Conflict{
		Incoming: finance.PaymentParams{Description: "Initial Deposit", Amount: 750_000, InvoiceNumber: "INV-2024-001"},
		Existing: finance.Payment{ID: "p1", Description: "Initial Deposit - 30%", Amount: 750_000},
	}
	milestone := finance.Conflict{
		Incoming: finance.PaymentParams{Description: "Design Phase", Amount: 500_000},
		Existing: finance.Payment{ID: "p2", Description: "Design Phase", Amount: 500_000},
	}

	type testCase struct {
		name        string
		choices     []keepSide
		wantAdd     []finance.PaymentParams
		wantReplace map[string]finance.PaymentParams
	}

	tests := []testCase{
		{
			name:        "Keep Recorded",
			choices:     []keepSide{keepRecorded, keepRecorded},
			wantAdd:     []finance.PaymentParams{fresh},
			wantReplace: map[string]finance.PaymentParams{},
		},
		{
			name:        "Ledger And Both",
			choices:     []keepSide{keepLedger, keepBoth},
			wantAdd:     []finance.PaymentParams{fresh, milestone.Incoming},
			wantReplace: map[string]finance.PaymentParams{"p1": deposit.Incoming},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ImportModel{
				fresh:     []finance.PaymentParams{fresh},
				conflicts: []finance.Conflict{deposit, milestone},
				choices:   tt.choices,
			}

			res := m.resolution()
			assert.Equal(t, tt.wantAdd, res.Add)
			assert.Equal(t, tt.wantReplace, res.Replace)
		})
	}
}

func TestImportModel_CycleChoice(t *testing.T) {
	conflicts := []finance.Conflict{
		{Existing: finance.Payment{ID: "p1"}},
		{Existing: finance.Payment{ID: "p2"}},
	}
	choices := make([]keepSide, len(conflicts))

	m := ImportModel{
		state:     importStateResolve,
		conflicts: conflicts,
		choices:   choices,
		table:     resolveTable(conflicts, choices),
	}

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	next, _ := m.Update(space)
	m = next.(ImportModel)
	assert.Equal(t, []keepSide{keepLedger, keepRecorded}, m.choices)

	next, _ = m.Update(space)
	m = next.(ImportModel)
	next, _ = m.Update(space)
	m = next.(ImportModel)
	assert.Equal(t, []keepSide{keepRecorded, keepRecorded}, m.choices)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = next.(ImportModel)
	require.Len(t, m.choices, 2)
	assert.Equal(t, []keepSide{keepLedger, keepLedger}, m.choices)
	assert.Equal(t, "ledger", m.table.Rows()[1][0])
}
