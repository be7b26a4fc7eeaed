package series

import (
	"encoding/json"
	"math"
)

// nullableFloat marshals NaN and infinities as JSON null, and reads null
// back as NaN. encoding/json rejects non-finite values outright, but an
// undefined coefficient is a legitimate result here.
type nullableFloat float64

func (f nullableFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if !Defined(v) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *nullableFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nullableFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = nullableFloat(v)
	return nil
}

type correlationResultJSON struct {
	PearsonR    nullableFloat `json:"pearson_r"`
	PearsonP    nullableFloat `json:"pearson_p"`
	SpearmanR   nullableFloat `json:"spearman_r"`
	SpearmanP   nullableFloat `json:"spearman_p"`
	SampleCount int           `json:"n"`
}

func (c CorrelationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(correlationResultJSON{
		PearsonR:    nullableFloat(c.PearsonR),
		PearsonP:    nullableFloat(c.PearsonP),
		SpearmanR:   nullableFloat(c.SpearmanR),
		SpearmanP:   nullableFloat(c.SpearmanP),
		SampleCount: c.SampleCount,
	})
}

func (c *CorrelationResult) UnmarshalJSON(data []byte) error {
	var aux correlationResultJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.PearsonR = float64(aux.PearsonR)
	c.PearsonP = float64(aux.PearsonP)
	c.SpearmanR = float64(aux.SpearmanR)
	c.SpearmanP = float64(aux.SpearmanP)
	c.SampleCount = aux.SampleCount
	return nil
}

type lagPointJSON struct {
	Lag         int           `json:"lag"`
	R           nullableFloat `json:"r"`
	P           nullableFloat `json:"p"`
	SampleCount int           `json:"n"`
}

func (p LagPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(lagPointJSON{
		Lag: p.Lag, R: nullableFloat(p.R), P: nullableFloat(p.P), SampleCount: p.SampleCount,
	})
}

func (p *LagPoint) UnmarshalJSON(data []byte) error {
	var aux lagPointJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Lag = aux.Lag
	p.R = float64(aux.R)
	p.P = float64(aux.P)
	p.SampleCount = aux.SampleCount
	return nil
}

type lagResultJSON struct {
	BestLag     int           `json:"best_lag"`
	BestR       nullableFloat `json:"best_r"`
	BestP       nullableFloat `json:"best_p"`
	SampleCount int           `json:"n"`
	Table       []LagPoint    `json:"table,omitempty"`
}

func (l LagResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(lagResultJSON{
		BestLag:     l.BestLag,
		BestR:       nullableFloat(l.BestR),
		BestP:       nullableFloat(l.BestP),
		SampleCount: l.SampleCount,
		Table:       l.Table,
	})
}

func (l *LagResult) UnmarshalJSON(data []byte) error {
	var aux lagResultJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.BestLag = aux.BestLag
	l.BestR = float64(aux.BestR)
	l.BestP = float64(aux.BestP)
	l.SampleCount = aux.SampleCount
	l.Table = aux.Table
	return nil
}
