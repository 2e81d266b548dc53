package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/matching"
)

func TestService_Apply(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *matching.MockRepository)
		want      string
	}

	tests := []testCase{
		{
			name: "Suggestion Replaces",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "TRF AHMAD ABDULLAH DEP").Return("Initial Deposit", nil)
			},
			want: "Initial Deposit",
		},
		{
			name: "No Match Keeps",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), gomock.Any()).Return("", nil)
			},
			want: "TRF AHMAD ABDULLAH DEP",
		},
		{
			name: "Lookup Error Keeps",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), gomock.Any()).Return("", errors.New("db error"))
			},
			want: "TRF AHMAD ABDULLAH DEP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			tt.setupMock(repo)

			in := []finance.PaymentParams{{Description: "TRF AHMAD ABDULLAH DEP", Amount: 100}}
			got := matching.NewService(repo).Apply(context.Background(), in)

			assert.Equal(t, tt.want, got[0].Description)
			assert.Equal(t, "TRF AHMAD ABDULLAH DEP", in[0].Description)
		})
	}
}
