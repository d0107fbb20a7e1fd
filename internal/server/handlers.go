package server

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lambdcalculus/periods/internal/formats"
	"github.com/lambdcalculus/periods/internal/store"
	"github.com/lambdcalculus/periods/pkg/packets"
	"github.com/lambdcalculus/periods/pkg/period"
)

// A handleFunc answers a request with the data of a successful response.
type handleFunc func(srv *PeriodServer, req packets.Request) (any, error)

var handlerMap map[string]handleFunc

func init() {
	handlerMap = map[string]handleFunc{
		packets.HeaderPrint:     (*PeriodServer).handlePrint,
		packets.HeaderParse:     (*PeriodServer).handleParse,
		packets.HeaderNormalize: (*PeriodServer).handleNormalize,
		packets.HeaderBetween:   (*PeriodServer).handleBetween,
		packets.HeaderAdd:       (*PeriodServer).handleAdd,
		packets.HeaderSave:      (*PeriodServer).handleSave,
		packets.HeaderLoad:      (*PeriodServer).handleLoad,
		packets.HeaderList:      (*PeriodServer).handleList,
		packets.HeaderDelete:    (*PeriodServer).handleDelete,
		packets.HeaderFormats:   (*PeriodServer).handleFormats,
	}
}

// Handle answers a request. Every response carries the request's ID, or a
// fresh UUID if it had none.
func (srv *PeriodServer) Handle(req packets.Request) packets.Response {
	start := time.Now()
	resp := packets.Response{Header: req.Header, ID: req.ID}
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}

	handler, ok := handlerMap[req.Header]
	if !ok {
		err := fmt.Errorf("unknown request %q", req.Header)
		srv.metrics.ObserveRequest("unknown", start, err)
		resp.Error = err.Error()
		return resp
	}

	data, err := handler(srv, req)
	srv.metrics.ObserveRequest(req.Header, start, err)
	if err != nil {
		srv.logger.Debugf("Request %v (%v) failed: %v", req.Header, resp.ID, err)
		resp.Error = err.Error()
		return resp
	}
	resp.OK = true
	resp.Data = data
	return resp
}

func periodData(p period.Period) packets.DataPeriod {
	return packets.DataPeriod{Period: p, Fields: p.Type().FieldNames()}
}

func entryData(e store.Entry) packets.DataEntry {
	return packets.DataEntry{
		Name:    e.Name,
		Period:  e.Period,
		Fields:  e.Period.Type().FieldNames(),
		Created: e.Created.UTC(),
	}
}

// in returns t in the named zone, or unchanged if zone is empty.
func in(t time.Time, zone string) (time.Time, error) {
	if zone == "" {
		return t, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return t, fmt.Errorf("unknown zone %q", zone)
	}
	return t.In(loc), nil
}

func (srv *PeriodServer) handlePrint(req packets.Request) (any, error) {
	var data packets.DataPrint
	if err := req.Decode(&data); err != nil {
		return nil, err
	}
	f, err := srv.formats.Lookup(data.Format, data.Lang)
	if err != nil {
		return nil, err
	}
	text, err := f.Print(data.Period)
	if err != nil {
		return nil, err
	}
	return packets.DataText{Text: text}, nil
}

func (srv *PeriodServer) handleParse(req packets.Request) (any, error) {
	var data packets.DataParse
	if err := req.Decode(&data); err != nil {
		return nil, err
	}
	f, err := srv.formats.Lookup(data.Format, data.Lang)
	if err != nil {
		return nil, err
	}
	if data.Fields != "" {
		pt, err := formats.ParseType(data.Fields)
		if err != nil {
			return nil, err
		}
		f = f.WithParseType(pt)
	}
	p, err := f.ParsePeriod(data.Text)
	if err != nil {
		return nil, err
	}
	return periodData(p), nil
}

func (srv *PeriodServer) handleNormalize(req packets.Request) (any, error) {
	var data packets.DataNormalize
	if err := req.Decode(&data); err != nil {
		return nil, err
	}
	pt, err := formats.ParseType(data.Fields)
	if err != nil {
		return nil, err
	}
	p, err := data.Period.NormalizedStandardTo(pt)
	if err != nil {
		return nil, err
	}
	return periodData(p), nil
}

func (srv *PeriodServer) handleBetween(req packets.Request) (any, error) {
	var data packets.DataBetween
	if err := req.Decode(&data); err != nil {
		return nil, err
	}
	pt, err := formats.ParseType(data.Fields)
	if err != nil {
		return nil, err
	}
	start, err := in(data.Start, data.Zone)
	if err != nil {
		return nil, err
	}
	p, err := period.Between(start, data.End, pt, nil)
	if err != nil {
		return nil, err
	}
	return periodData(p), nil
}

// handleAdd adds the period scalar times, once if scalar is omitted.
func (srv *PeriodServer) handleAdd(req packets.Request) (any, error) {
	var data packets.DataAdd
	if err := req.Decode(&data); err != nil {
		return nil, err
	}
	if data.Scalar == 0 {
		data.Scalar = 1
	}
	instant, err := in(data.Instant, data.Zone)
	if err != nil {
		return nil, err
	}
	t, err := data.Period.AddTo(instant, data.Scalar)
	if err != nil {
		return nil, err
	}
	return packets.DataInstant{Instant: t}, nil
}

func (srv *PeriodServer) handleSave(req packets.Request) (any, error) {
	var data packets.DataSave
	if err := req.Decode(&data); err != nil {
		return nil, err
	}
	p := data.Period
	if data.Fields != "" {
		pt, err := formats.ParseType(data.Fields)
		if err != nil {
			return nil, err
		}
		if p, err = p.WithType(pt); err != nil {
			return nil, err
		}
	}
	if err := srv.store.Save(data.Name, p); err != nil {
		return nil, err
	}
	srv.logger.Infof("Saved period %q (%v).", data.Name, p)
	return periodData(p), nil
}

func (srv *PeriodServer) handleLoad(req packets.Request) (any, error) {
	var data packets.DataName
	if err := req.Decode(&data); err != nil {
		return nil, err
	}
	e, err := srv.store.Load(data.Name)
	if err != nil {
		return nil, err
	}
	return entryData(e), nil
}

func (srv *PeriodServer) handleList(req packets.Request) (any, error) {
	entries, err := srv.store.List()
	if err != nil {
		return nil, err
	}
	list := make([]packets.DataEntry, len(entries))
	for i, e := range entries {
		list[i] = entryData(e)
	}
	return list, nil
}

func (srv *PeriodServer) handleDelete(req packets.Request) (any, error) {
	var data packets.DataName
	if err := req.Decode(&data); err != nil {
		return nil, err
	}
	if err := srv.store.Delete(data.Name); err != nil {
		return nil, err
	}
	srv.logger.Infof("Deleted period %q.", data.Name)
	return nil, nil
}

func (srv *PeriodServer) handleFormats(req packets.Request) (any, error) {
	return srv.formats.Names(), nil
}
