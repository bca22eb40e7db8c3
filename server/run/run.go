package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/opsbook-cli/opsbook/server/cleanup"
	"github.com/opsbook-cli/opsbook/slice"
)

// RunServer holds the state of one interactive run session: the runbook's
// commands, the index of the current step, and any parameter values the
// user has set. Shell hooks in the spawned subshell talk to it over a unix
// socket via the hidden `opsbook internal` subcommands.
type RunServer struct {
	socketPath string
	logger     *slog.Logger
	listener   net.Listener

	mu        sync.Mutex
	currIndex int
	commands  []*RunCommand
	params    map[string]string

	closed atomic.Bool
}

type RunCommand struct {
	Command string            `json:"command,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

// State is the session state returned to internal subcommands.
type State struct {
	Command string            `json:"command"`
	Index   int               `json:"index"`
	Params  map[string]string `json:"params,omitempty"`
}

// CommandWithSetParams substitutes every set parameter into the current
// command.
func (s *State) CommandWithSetParams() string {
	cmd := s.Command
	for name, value := range s.Params {
		if value == "" {
			continue
		}
		cmd = strings.ReplaceAll(cmd, name, value)
	}
	return cmd
}

const DefaultRunSocketPath = "/tmp/opsbook-run.sock"

var ErrAbortRun = errors.New("abort running runbook")

type Option func(s *RunServer)

func WithLogger(logger *slog.Logger) Option {
	return func(s *RunServer) {
		s.logger = logger
	}
}

var defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

// cleanupSocket shuts down a leftover server and removes its socket. The
// caller has verified that socketPath exists.
func cleanupSocket(socketPath string) error {
	cl, err := NewClient(context.Background(), socketPath)
	if err != nil {
		return err
	}
	cl.SendShutdown()

	if err := os.Remove(socketPath); err != nil {
		return err
	}
	return nil
}

func NewServerWithDefaultSocketPath(rb *runbook.Runbook, opts ...Option) (*RunServer, error) {
	return NewServerWithSocketPath(DefaultRunSocketPath, rb, opts...)
}

func NewServerWithSocketPath(socketPath string, rb *runbook.Runbook, opts ...Option) (*RunServer, error) {
	if fileInfo, _ := os.Stat(socketPath); fileInfo != nil {
		cleanupOK, cerr := cleanup.GetPermission("run")
		if cerr != nil {
			return nil, cerr
		}

		if !cleanupOK {
			return nil, ErrAbortRun
		}

		cleanupSocket(socketPath)
	}
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	cmds := slice.Map(rb.Commands(), func(command string) *RunCommand {
		return &RunCommand{
			Command: command,
		}
	})

	rs := &RunServer{
		socketPath: socketPath,
		logger:     defaultLogger,
		commands:   cmds,
		params:     map[string]string{},
		listener:   listener,
	}

	for _, opt := range opts {
		opt(rs)
	}
	return rs, nil
}

func (rs *RunServer) Close() error {
	if rs.closed.Load() {
		return nil
	}
	rs.closed.Store(true)
	return rs.listener.Close()
}

func (rs *RunServer) Commands() []*RunCommand {
	return rs.commands
}

func (rs *RunServer) SocketPath() string {
	return rs.socketPath
}

func (rs *RunServer) ListenAndServe() {
	for {
		conn, err := rs.listener.Accept()
		if err != nil {
			if rs.closed.Load() {
				return
			}
			rs.logger.Debug("failed to accept connection", "error", err.Error())
			continue
		}

		go rs.handleConnection(conn)
	}
}

func (rs *RunServer) handleConnection(c net.Conn) {
	defer c.Close()

	var data RunCommand
	if err := json.NewDecoder(c).Decode(&data); err != nil {
		rs.logger.Error("failed to decode message", "error", err.Error(), "component", "run")
		return
	}

	if data.IsShutdown() {
		rs.Close()
		return
	}

	rs.handleCommand(data, c)
}

// handleCommand applies the message and replies with the resulting state
// on the same connection. Clients wait for the reply, so a mutation is
// guaranteed to be visible once the call returns.
func (rs *RunServer) handleCommand(data RunCommand, c net.Conn) {
	switch data.Command {
	case shutdownCommand:
		rs.Close()
		return
	case nextCommand:
		rs.mu.Lock()
		rs.currIndex++
		rs.mu.Unlock()
	case previousCommand:
		rs.mu.Lock()
		rs.currIndex--
		rs.mu.Unlock()
	case setParamsCommand:
		rs.mu.Lock()
		for name, value := range data.Params {
			rs.params[name] = value
		}
		rs.mu.Unlock()
	case currentCommand:
	default:
		rs.logger.Debug("unknown command", "command", data.Command)
		return
	}

	var response State
	rs.mu.Lock()
	if rs.currIndex >= len(rs.commands) {
		rs.currIndex = len(rs.commands) - 1
	}
	if rs.currIndex < 0 {
		rs.currIndex = 0
	}
	cmd := rs.commands[rs.currIndex]
	response.Command = cmd.Command
	response.Index = rs.currIndex
	response.Params = maps.Clone(rs.params)
	rs.mu.Unlock()

	rs.logger.Debug("fetching command", "command", cmd)
	json.NewEncoder(c).Encode(response)
}

const (
	shutdownCommand  = "opsbook shutdown"
	nextCommand      = "opsbook internal next"
	previousCommand  = "opsbook internal previous"
	currentCommand   = "opsbook internal current"
	setParamsCommand = "opsbook internal set-param"
)

func (rc *RunCommand) IsShutdown() bool {
	return rc.Command == shutdownCommand
}
