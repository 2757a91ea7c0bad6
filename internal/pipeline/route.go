package pipeline

import (
	"context"

	"convoy-pipeline/internal/model"
)

// DefaultThreshold splits high (JSON) from low (XML) scores
const DefaultThreshold = 3

// Targets selects which sinks a routing pass writes
type Targets struct {
	Store bool
	JSON  bool
	XML   bool
}

// Any reports whether at least one sink is selected
func (t Targets) Any() bool { return t.Store || t.JSON || t.XML }

// Sinks is the set of destinations the router dispatches to
type Sinks interface {
	WriteStore(ctx context.Context, rows []model.ScoredVehicle) (model.SinkResult, error)
	WriteJSON(fleet model.Fleet) (model.SinkResult, error)
	WriteXML(fleet model.Fleet) (model.SinkResult, error)
}

// Partition splits a scored table into vehicles scoring above threshold and
// the rest. Both partitions drop the score and keep the input order.
func Partition(scored []model.ScoredVehicle, threshold int) (high, low model.Fleet) {
	high, low = model.Fleet{}, model.Fleet{}
	for _, s := range scored {
		if s.Score > threshold {
			high = append(high, s.Vehicle)
		} else {
			low = append(low, s.Vehicle)
		}
	}
	return high, low
}

// Route writes the full scored table to the store, the high partition to JSON
// and the low partition to XML, limited to the selected targets. report is
// called after every successful write; the first failure stops routing.
func Route(ctx context.Context, scored []model.ScoredVehicle, threshold int, targets Targets, sinks Sinks, report func(model.SinkResult)) error {
	high, low := Partition(scored, threshold)

	if targets.Store {
		res, err := sinks.WriteStore(ctx, scored)
		if err != nil {
			return err
		}
		report(res)
	}
	if targets.JSON {
		res, err := sinks.WriteJSON(high)
		if err != nil {
			return err
		}
		report(res)
	}
	if targets.XML {
		res, err := sinks.WriteXML(low)
		if err != nil {
			return err
		}
		report(res)
	}
	return nil
}
