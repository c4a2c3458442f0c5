// Package charts persists generated chart descriptions so they can be
// fetched and shared by ID. The inference engine itself stays stateless;
// storage is purely a transport-side convenience.
package charts

import (
	"time"

	"github.com/liamcoop/chartgen/inference"
)

// SavedChart is one stored chart description.
type SavedChart struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	ChartType string               `json:"chart_type"`
	Spec      *inference.ChartSpec `json:"spec"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
