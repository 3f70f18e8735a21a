package stock

import "time"

// DaysRemaining retorna quantos dias inteiros faltam até a validade,
// comparando as duas datas na granularidade de dia (hora/minuto são
// descartados antes da subtração, para não errar por diferenças parciais).
// Pode ser negativo para estoque já vencido e zero no dia do vencimento.
func DaysRemaining(expiration, asOf time.Time) int {
	e := time.Date(expiration.Year(), expiration.Month(), expiration.Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(a).Hours() / 24)
}
