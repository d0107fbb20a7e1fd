package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lambdcalculus/periods/internal/config"
	"github.com/lambdcalculus/periods/internal/server"
	"github.com/lambdcalculus/periods/pkg/logger"
	"github.com/lambdcalculus/periods/pkg/packets"
)

// result is a response with its data still encoded.
type result struct {
	Header string          `json:"header"`
	ID     string          `json:"id"`
	OK     bool            `json:"ok"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

// A backend answers requests, in process or through periodd.
type backend interface {
	do(req packets.Request) (result, error)
	close()
}

// call sends a request and decodes the response data into out, if out is not nil.
func call(b backend, header string, data any, out any) error {
	req, err := packets.NewRequest(header, data)
	if err != nil {
		return err
	}
	req.ID = uuid.NewString()
	res, err := b.do(req)
	if err != nil {
		return err
	}
	if !res.OK {
		return errors.New(res.Error)
	}
	if out == nil || len(res.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Data, out); err != nil {
		return fmt.Errorf("bad %v response (%w)", header, err)
	}
	return nil
}

// local runs requests through the server's handlers without a network.
type local struct {
	srv *server.PeriodServer
}

func newLocal(conf *config.File) (*local, error) {
	srv, err := server.MakeServer(conf, logger.NewLogger(nil, logger.LevelFatal, io.Discard))
	if err != nil {
		return nil, err
	}
	return &local{srv: srv}, nil
}

func (l *local) do(req packets.Request) (result, error) {
	b, err := json.Marshal(l.srv.Handle(req))
	if err != nil {
		return result{}, err
	}
	var res result
	err = json.Unmarshal(b, &res)
	return res, err
}

func (l *local) close() {
	l.srv.Close()
}

// remote talks to periodd over a websocket.
type remote struct {
	ws *websocket.Conn
}

func dialRemote(url, token string) (*remote, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("Couldn't dial server (%w).", err)
	}
	r := &remote{ws: ws}

	var hello packets.DataHelloServer
	if err := call(r, packets.HeaderHello, packets.DataHelloClient{App: "periodctl", Version: server.Version, Token: token}, &hello); err != nil {
		ws.Close()
		return nil, fmt.Errorf("Server refused hello (%w).", err)
	}
	logger.Debugf("Connected to %v (%v %v).", hello.Name, hello.App, hello.Version)
	return r, nil
}

func (r *remote) do(req packets.Request) (result, error) {
	if err := r.ws.WriteJSON(req); err != nil {
		return result{}, fmt.Errorf("Couldn't send request (%w).", err)
	}
	var res result
	if err := r.ws.ReadJSON(&res); err != nil {
		return result{}, fmt.Errorf("Couldn't read response (%w).", err)
	}
	if res.ID != req.ID {
		return result{}, fmt.Errorf("Response %q does not match request %q.", res.ID, req.ID)
	}
	return res, nil
}

func (r *remote) close() {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	r.ws.WriteMessage(websocket.CloseMessage, msg)
	r.ws.Close()
}
