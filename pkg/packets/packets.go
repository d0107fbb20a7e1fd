// Package packets defines the JSON messages exchanged with periodd over a websocket.
//
// Clients send a [Request] and get exactly one [Response] back, with the
// same header and ID. Periods travel as ISO-8601 strings.
package packets

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lambdcalculus/periods/pkg/period"
)

// Request headers.
const (
	HeaderHello     = "hello"
	HeaderPrint     = "print"
	HeaderParse     = "parse"
	HeaderNormalize = "normalize"
	HeaderBetween   = "between"
	HeaderAdd       = "add"
	HeaderSave      = "save"
	HeaderLoad      = "load"
	HeaderList      = "list"
	HeaderDelete    = "delete"
	HeaderFormats   = "formats"
)

type Request struct {
	Header string          `json:"header"`
	ID     string          `json:"id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type Response struct {
	Header string `json:"header"`
	ID     string `json:"id"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// MakeRequest decodes a request.
func MakeRequest(raw []byte) (Request, error) {
	var r Request
	if err := json.Unmarshal(raw, &r); err != nil {
		return Request{}, err
	}
	if r.Header == "" {
		return Request{}, fmt.Errorf("packets: Request has no header.")
	}
	return r, nil
}

// NewRequest encodes data into a request.
func NewRequest(header string, data any) (Request, error) {
	req := Request{Header: header}
	if data == nil {
		return req, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return Request{}, fmt.Errorf("packets: Couldn't encode %v data (%w).", header, err)
	}
	req.Data = b
	return req, nil
}

// Decode reads the request's data into v. Missing data leaves v untouched.
func (r Request) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("packets: Bad %v data (%w).", r.Header, err)
	}
	return nil
}

// Client data

type DataHelloClient struct {
	App     string `json:"application"`
	Version string `json:"version"`
	Token   string `json:"token,omitempty"`
}

type DataPrint struct {
	Period period.Period `json:"period"`
	Format string        `json:"format,omitempty"`
	Lang   string        `json:"lang,omitempty"`
}

type DataParse struct {
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
	Lang   string `json:"lang,omitempty"`
	// Comma separated fields the result is shaped into. Empty means all.
	Fields string `json:"fields,omitempty"`
}

type DataNormalize struct {
	Period period.Period `json:"period"`
	Fields string        `json:"fields,omitempty"`
}

type DataBetween struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Fields string    `json:"fields,omitempty"`
	// IANA zone the calendar arithmetic runs in. Empty means the zone of Start.
	Zone string `json:"zone,omitempty"`
}

type DataAdd struct {
	Period  period.Period `json:"period"`
	Instant time.Time     `json:"instant"`
	Scalar  int           `json:"scalar,omitempty"`
	Zone    string        `json:"zone,omitempty"`
}

type DataSave struct {
	Name   string        `json:"name"`
	Period period.Period `json:"period"`
	Fields string        `json:"fields,omitempty"`
}

type DataName struct {
	Name string `json:"name"`
}

// Server data

type DataHelloServer struct {
	App     string   `json:"application"`
	Version string   `json:"version"`
	Name    string   `json:"name"`
	Desc    string   `json:"description"`
	Clients int      `json:"clients"`
	Formats []string `json:"formats"`
}

type DataText struct {
	Text string `json:"text"`
}

type DataPeriod struct {
	Period period.Period `json:"period"`
	Fields string        `json:"fields"`
}

type DataInstant struct {
	Instant time.Time `json:"instant"`
}

type DataEntry struct {
	Name    string        `json:"name"`
	Period  period.Period `json:"period"`
	Fields  string        `json:"fields"`
	Created time.Time     `json:"created"`
}
