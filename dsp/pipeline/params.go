package pipeline

import "math"

// Params holds the parsed parameters of one stage description.
type Params struct {
	Type string
	Tag  string
	Num  map[string]float64
	Str  map[string]string
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetInt extracts a numeric parameter rounded to the nearest integer.
func (p Params) GetInt(key string, def int) int {
	return int(math.Round(p.GetNum(key, float64(def))))
}

// GetBool extracts a boolean parameter. Any non-zero number is true.
func (p Params) GetBool(key string, def bool) bool {
	d := 0.0
	if def {
		d = 1
	}

	return p.GetNum(key, d) != 0
}

// GetStr extracts a string parameter, returning def if missing.
func (p Params) GetStr(key, def string) string {
	if v, ok := p.Str[key]; ok {
		return v
	}

	return def
}

// Has reports whether a numeric or string parameter is present.
func (p Params) Has(key string) bool {
	if _, ok := p.Num[key]; ok {
		return true
	}

	_, ok := p.Str[key]

	return ok
}

// parseParams extracts numeric and string parameters from a raw JSON params value.
func parseParams(raw any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	params, ok := raw.(map[string]any)
	if !ok || params == nil {
		return num, str
	}

	for k, v := range params {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}
