package run

import (
	"context"
	"encoding/json"
	"net"
)

type Client interface {
	SendShutdown() error
	NextCommand() error
	PreviousCommand() error
	CurrentState() (*State, error)
	SetParams(params map[string]string) error
}

func NewDefaultClient(ctx context.Context) (Client, error) {
	return NewClient(ctx, DefaultRunSocketPath)
}

type client struct {
	socketPath string
}

var _ Client = &client{}

func NewClient(ctx context.Context, socketPath string) (Client, error) {
	return &client{
		socketPath: socketPath,
	}, nil
}

// roundTrip sends one message and waits for the server's state reply. The
// reply doubles as an ack: once roundTrip returns, the server has applied
// the message.
func (c *client) roundTrip(data RunCommand) (*State, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(data); err != nil {
		return nil, err
	}

	var response State
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SendShutdown is write only: the server closes instead of replying.
func (c *client) SendShutdown() error {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	return json.NewEncoder(conn).Encode(RunCommand{Command: shutdownCommand})
}

func (c *client) NextCommand() error {
	_, err := c.roundTrip(RunCommand{Command: nextCommand})
	return err
}

func (c *client) PreviousCommand() error {
	_, err := c.roundTrip(RunCommand{Command: previousCommand})
	return err
}

func (c *client) SetParams(params map[string]string) error {
	_, err := c.roundTrip(RunCommand{Command: setParamsCommand, Params: params})
	return err
}

func (c *client) CurrentState() (*State, error) {
	return c.roundTrip(RunCommand{Command: currentCommand})
}
