package stock

import (
	"testing"
	"time"
)

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name       string
		expiration time.Time
		asOf       time.Time
		want       int
	}{
		{"vence hoje", day(2025, 1, 10), day(2025, 1, 10), 0},
		{"venceu ontem", day(2025, 1, 9), day(2025, 1, 10), -1},
		{"vence amanhã", day(2025, 1, 11), day(2025, 1, 10), 1},
		{"vence em trinta dias", day(2025, 2, 9), day(2025, 1, 10), 30},
		{"vencido há uma semana", day(2025, 1, 3), day(2025, 1, 10), -7},
		{"virada de ano", day(2026, 1, 1), day(2025, 12, 31), 1},
		{
			// horário não pode causar erro de um dia: 23h de hoje contra
			// 01h do dia do vencimento ainda é um dia inteiro
			name:       "componentes de hora são descartados",
			expiration: time.Date(2025, 1, 11, 1, 0, 0, 0, time.UTC),
			asOf:       time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC),
			want:       1,
		},
		{
			name:       "mesmo dia com horários diferentes",
			expiration: time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC),
			asOf:       time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC),
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysRemaining(tt.expiration, tt.asOf)
			if got != tt.want {
				t.Errorf("DaysRemaining(%v, %v) = %d, esperado %d",
					tt.expiration, tt.asOf, got, tt.want)
			}
		})
	}
}
