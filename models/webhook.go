package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// WebhookRequest is the inbound Dialogflow fulfillment payload. Only the
// fields the router needs are modeled; the platform sends plenty more that we
// ignore.
type WebhookRequest struct {
	ResponseID  string      `json:"responseId"`
	QueryResult QueryResult `json:"queryResult" validate:"required"`
	Session     string      `json:"session" validate:"required"`
}

type QueryResult struct {
	QueryText  string `json:"queryText"`
	Intent     Intent `json:"intent"`
	Parameters Params `json:"parameters"`
}

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName" validate:"required"`
}

// WebhookResponse is the only response shape we ever return to the platform.
type WebhookResponse struct {
	FulfillmentText string `json:"fulfillmentText"`
}

// SessionID extracts the opaque conversation id: the last segment of the
// session path ("projects/.../sessions/<id>").
func (r *WebhookRequest) SessionID() string {
	parts := strings.Split(r.Session, "/")
	return parts[len(parts)-1]
}

// Params holds the intent parameters. Dialogflow sends each parameter as
// either a scalar or a list depending on how the agent slot-filled it, so
// values are kept as a tagged union and converted on demand.
type Params map[string]ParamValue

// ParamValue is one parameter value: a scalar or a sequence of scalars.
type ParamValue struct {
	scalar json.RawMessage
	list   []json.RawMessage
	isList bool
}

func (p *ParamValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		p.isList = true
		return json.Unmarshal(trimmed, &p.list)
	}
	p.scalar = append(json.RawMessage(nil), trimmed...)
	return nil
}

// IsZero reports whether the parameter was absent, JSON null, or an empty
// list. The platform sends any of these when a slot went unfilled.
func (p ParamValue) IsZero() bool {
	if p.isList {
		return len(p.list) == 0
	}
	return len(p.scalar) == 0 || string(p.scalar) == "null"
}

// Strings converts the value to a string slice. A scalar string becomes a
// single-element slice; non-string elements are an error.
func (p ParamValue) Strings() ([]string, error) {
	if p.IsZero() {
		return nil, nil
	}
	raws := p.list
	if !p.isList {
		raws = []json.RawMessage{p.scalar}
	}
	values := make([]string, 0, len(raws))
	for _, raw := range raws {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("parameter element %s is not a string", raw)
		}
		values = append(values, s)
	}
	return values, nil
}

// Floats converts the value to a float slice. A scalar number becomes a
// single-element slice; numeric strings are accepted the way the platform
// sometimes sends them.
func (p ParamValue) Floats() ([]float64, error) {
	if p.IsZero() {
		return nil, nil
	}
	raws := p.list
	if !p.isList {
		raws = []json.RawMessage{p.scalar}
	}
	values := make([]float64, 0, len(raws))
	for _, raw := range raws {
		f, err := parseFloat(raw)
		if err != nil {
			return nil, err
		}
		values = append(values, f)
	}
	return values, nil
}

// Float converts the value to a single number, unwrapping the first element
// when the platform wrapped it in a list.
func (p ParamValue) Float() (float64, error) {
	if p.isList {
		if len(p.list) == 0 {
			return 0, fmt.Errorf("parameter list is empty")
		}
		return parseFloat(p.list[0])
	}
	if p.IsZero() {
		return 0, fmt.Errorf("parameter is missing")
	}
	return parseFloat(p.scalar)
}

func parseFloat(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %q is not numeric", s)
		}
		return f, nil
	}
	return 0, fmt.Errorf("parameter element %s is not numeric", raw)
}

// Strings reads a named parameter as a string slice; an absent key yields nil.
func (p Params) Strings(key string) ([]string, error) {
	value, ok := p[key]
	if !ok {
		return nil, nil
	}
	return value.Strings()
}

// Floats reads a named parameter as a float slice; an absent key yields nil.
func (p Params) Floats(key string) ([]float64, error) {
	value, ok := p[key]
	if !ok {
		return nil, nil
	}
	return value.Floats()
}

// Float reads a named parameter as a single number. The second return reports
// whether the key was present at all.
func (p Params) Float(key string) (float64, bool, error) {
	value, ok := p[key]
	if !ok || value.IsZero() {
		return 0, false, nil
	}
	f, err := value.Float()
	return f, true, err
}
