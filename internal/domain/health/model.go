package health

import "time"

// Record es una medición de salud (peso en kg) de una mascota en un día.
type Record struct {
	ID    string
	PetID string

	Date     time.Time // día calendario (hora ignorada)
	WeightKg float64
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeightPoint alimenta el gráfico de evolución de peso.
type WeightPoint struct {
	Date     time.Time
	WeightKg float64
}

type Order string

const (
	OrderDateDesc Order = "desc"
	OrderDateAsc  Order = "asc"
)

func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case "", OrderDateDesc:
		return OrderDateDesc, true
	case OrderDateAsc:
		return OrderDateAsc, true
	}
	return "", false
}
