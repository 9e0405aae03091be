package types

import "encoding/json"

// Options holds the sampling parameters forwarded verbatim to the model
// server. Nil fields are omitted from the request. Extra carries any
// parameter without a named field; named fields win on key collisions.
type Options struct {
	Temperature   *float64 `json:"temperature,omitempty" example:"0.7"`
	TopP          *float64 `json:"top_p,omitempty" example:"0.9"`
	TopK          *int     `json:"top_k,omitempty" example:"40"`
	NumPredict    *int     `json:"num_predict,omitempty" example:"1000"`
	NumCtx        *int     `json:"num_ctx,omitempty" example:"4096"`
	Seed          *int     `json:"seed,omitempty" example:"42"`
	RepeatPenalty *float64 `json:"repeat_penalty,omitempty" example:"1.1"`
	Stop          []string `json:"stop,omitempty"`

	Extra map[string]any `json:"-"`
}

// Float returns a pointer to v, for filling optional fields inline.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// IsZero reports whether no option is set.
func (o *Options) IsZero() bool {
	if o == nil {
		return true
	}
	return o.Temperature == nil && o.TopP == nil && o.TopK == nil &&
		o.NumPredict == nil && o.NumCtx == nil && o.Seed == nil &&
		o.RepeatPenalty == nil && len(o.Stop) == 0 && len(o.Extra) == 0
}

// OrNil returns o, or nil when nothing is set, so the request omits the
// options object entirely.
func (o *Options) OrNil() *Options {
	if o.IsZero() {
		return nil
	}
	return o
}

// Merge returns a copy of o with every field set in over applied on top.
func (o *Options) Merge(over *Options) *Options {
	out := &Options{}
	for _, src := range []*Options{o, over} {
		if src == nil {
			continue
		}
		if src.Temperature != nil {
			out.Temperature = src.Temperature
		}
		if src.TopP != nil {
			out.TopP = src.TopP
		}
		if src.TopK != nil {
			out.TopK = src.TopK
		}
		if src.NumPredict != nil {
			out.NumPredict = src.NumPredict
		}
		if src.NumCtx != nil {
			out.NumCtx = src.NumCtx
		}
		if src.Seed != nil {
			out.Seed = src.Seed
		}
		if src.RepeatPenalty != nil {
			out.RepeatPenalty = src.RepeatPenalty
		}
		if len(src.Stop) > 0 {
			out.Stop = append([]string(nil), src.Stop...)
		}
		for k, v := range src.Extra {
			if out.Extra == nil {
				out.Extra = make(map[string]any)
			}
			out.Extra[k] = v
		}
	}
	return out
}

// MarshalJSON flattens Extra into the encoded object.
func (o Options) MarshalJSON() ([]byte, error) {
	type plain Options
	named, err := json.Marshal(plain(o))
	if err != nil {
		return nil, err
	}
	if len(o.Extra) == 0 {
		return named, nil
	}
	merged := make(map[string]any, len(o.Extra)+8)
	for k, v := range o.Extra {
		merged[k] = v
	}
	var fields map[string]any
	if err := json.Unmarshal(named, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the named fields and keeps unknown keys in Extra.
func (o *Options) UnmarshalJSON(b []byte) error {
	type plain Options
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range []string{"temperature", "top_p", "top_k", "num_predict", "num_ctx", "seed", "repeat_penalty", "stop"} {
		delete(all, k)
	}
	*o = Options(p)
	if len(all) > 0 {
		o.Extra = all
	}
	return nil
}
