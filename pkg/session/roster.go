package session

import (
	"sort"

	"github.com/samber/lo"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// Roster provides constant time lookups from car id to entry data.
// It is built once per request from the session roster and discarded with
// the request.
type Roster struct {
	byCarID map[string]model.CarEntry
	order   []string
}

func NewRoster(entries []model.CarEntry) *Roster {
	ret := &Roster{
		byCarID: lo.SliceToMap(entries, func(e model.CarEntry) (string, model.CarEntry) {
			return e.Car.CarID, e
		}),
	}
	ret.order = lo.Keys(ret.byCarID)
	sort.Strings(ret.order)
	return ret
}

// CarIDs returns all car ids in deterministic (sorted) order.
func (r *Roster) CarIDs() []string { return r.order }

func (r *Roster) Entry(carID string) (model.CarEntry, bool) {
	e, ok := r.byCarID[carID]
	return e, ok
}

// Abbrev returns the driver abbreviation, falling back to the car id for
// unknown cars.
func (r *Roster) Abbrev(carID string) string {
	if e, ok := r.byCarID[carID]; ok && e.Driver.AbbrevName != "" {
		return e.Driver.AbbrevName
	}
	return carID
}

func (r *Roster) Color(carID string) string {
	if e, ok := r.byCarID[carID]; ok {
		return e.Team.Color
	}
	return ""
}

func (r *Roster) DriverName(carID string) string {
	if e, ok := r.byCarID[carID]; ok {
		return e.Driver.Name
	}
	return carID
}

// FastestLapOf returns the car's fastest timed lap from the lap summary.
func FastestLapOf(laps []model.Lap, carID string) (model.Lap, bool) {
	var best model.Lap
	found := false
	for _, lap := range laps {
		if lap.CarID != carID || lap.LapTimeSecs <= 0 {
			continue
		}
		if !found || lap.LapTimeSecs < best.LapTimeSecs {
			best = lap
			found = true
		}
	}
	return best, found
}
