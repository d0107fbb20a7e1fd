package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lambdcalculus/periods/internal/client"
	"github.com/lambdcalculus/periods/internal/session"
	"github.com/lambdcalculus/periods/pkg/packets"
	"golang.org/x/crypto/bcrypt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: check the origin against a configured allow list.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// The handler for the '/' endpoint.
func (srv *PeriodServer) wsEndpoint(w http.ResponseWriter, r *http.Request) {
	srv.handlers.Add(1)
	defer srv.handlers.Done()

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.logger.Debugf("WS: Couldn't upgrade connection from %v (%v).", r.RemoteAddr, err)
		return // bad request
	}
	c := client.NewWSClient(ws, srv.config.WriteTimeout.Std(), srv.logger)

	id, err := srv.slots.Take()
	if err != nil {
		srv.metrics.Refused.Inc()
		srv.logger.Infof("Refused %v: %v", c.Addr(), err)
		c.Disconnect("server full")
		return
	}
	c.SetID(id)
	srv.logger.Debugf("New WS connection from %v (ID %v).", c.Addr(), id)

	srv.handleWSClient(c)
}

// Runs a client's request loop until the connection fails.
func (srv *PeriodServer) handleWSClient(c *client.Client) {
	srv.clients.Add(c)
	srv.metrics.Connections.Inc()
	defer srv.removeClient(c)

	for {
		req, err := c.ReadRequest()
		if errors.Is(err, client.ErrBadRequest) {
			c.WriteResponse(packets.Response{Header: "error", ID: uuid.NewString(), Error: err.Error()})
			continue
		}
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				srv.logger.Debugf("Error in connection to %v (%v).", c.Addr(), err)
			}
			return
		}

		var resp packets.Response
		switch {
		case req.Header == packets.HeaderHello:
			resp = srv.hello(c, req)
		case srv.config.AuthHash != "" && !c.Authed():
			resp = packets.Response{Header: req.Header, ID: req.ID, Error: "not authenticated, send hello first"}
		default:
			resp = srv.Handle(req)
		}
		if err := c.WriteResponse(resp); err != nil {
			return
		}
	}
}

// hello checks the client's token against the configured bcrypt hash and
// introduces the server.
func (srv *PeriodServer) hello(c *client.Client, req packets.Request) packets.Response {
	resp := packets.Response{Header: req.Header, ID: req.ID}
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}
	var data packets.DataHelloClient
	if err := req.Decode(&data); err != nil {
		resp.Error = err.Error()
		return resp
	}
	if srv.config.AuthHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(srv.config.AuthHash), []byte(data.Token)); err != nil {
			srv.logger.Infof("Bad token from %v.", c.Addr())
			resp.Error = "bad token"
			return resp
		}
	}
	c.SetAuthed(true)
	srv.logger.Debugf("Hello from %v (%v %v).", c.Addr(), data.App, data.Version)

	resp.OK = true
	resp.Data = packets.DataHelloServer{
		App:     App,
		Version: Version,
		Name:    srv.config.Name,
		Desc:    srv.config.Desc,
		Clients: srv.clients.Size(),
		Formats: srv.formats.Names(),
	}
	return resp
}

// Disconnects and cleans up a client.
func (srv *PeriodServer) removeClient(c *client.Client) {
	if c.ID() != session.None {
		srv.slots.Free(c.ID())
		c.SetID(session.None)
	}
	c.Disconnect("")
	srv.clients.Remove(c)
	srv.metrics.Connections.Dec()
}
