package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var flexNumberRegex = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)

// FlexFloat accepts both JSON numbers and strings such as "142", "142 km" or "50,000.00".
// Anything unparseable decodes to zero rather than failing the whole document.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexFloat(num)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flex float: %w", err)
	}
	*f = FlexFloat(ParseLooseFloat(s))
	return nil
}

// FlexInt accepts JSON numbers and strings such as "10" or "Level 10".
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("flex int: %w", err)
	}
	*i = FlexInt(f)
	return nil
}

// Int returns the plain value.
func (i FlexInt) Int() int {
	return int(i)
}

// Float64 returns the plain value.
func (f FlexFloat) Float64() float64 {
	return float64(f)
}

func (f FlexFloat) String() string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

// ParseLooseFloat pulls the first number out of s, ignoring thousands separators.
func ParseLooseFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	m := flexNumberRegex.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// TripList decodes either a list of trips or a single trip object.
type TripList []Trip

func (l *TripList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '{' {
		var single Trip
		if err := json.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("trip object: %w", err)
		}
		*l = TripList{single}
		return nil
	}

	var many []Trip
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("trip list: %w", err)
	}
	*l = many
	return nil
}

// FlexStrings decodes a string, a list of values, or an object such as {"start": .., "end": ..}.
type FlexStrings []string

func (s *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	switch data[0] {
	case '"':
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = FlexStrings{one}
	case '[':
		var raw []interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make(FlexStrings, 0, len(raw))
		for _, v := range raw {
			if v == nil {
				continue
			}
			out = append(out, fmt.Sprint(v))
		}
		*s = out
	case '{':
		var obj map[string]interface{}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*s = orderedValues(obj)
	default:
		*s = FlexStrings{string(data)}
	}
	return nil
}

func orderedValues(obj map[string]interface{}) FlexStrings {
	var out FlexStrings
	for _, key := range []string{"start", "from", "origin", "end", "to", "destination"} {
		if v, ok := obj[key]; ok && v != nil {
			out = append(out, fmt.Sprint(v))
			delete(obj, key)
		}
	}

	rest := make([]string, 0, len(obj))
	for k := range obj {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		if obj[k] != nil {
			out = append(out, fmt.Sprint(obj[k]))
		}
	}
	return out
}
