package ui

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"hdfm-tui/internal/ipc"
)

// ipcServer accepts control connections from the tray companion and
// bridges one command at a time into the bubbletea update loop.
type ipcServer struct {
	listener net.Listener
	ep       ipc.Endpoint
	messages chan ipcMsg

	done      chan struct{}
	closeOnce sync.Once
}

type ipcMsg struct {
	cmd   string
	reply chan ipcReply
}

type ipcReply struct {
	ok   bool
	data string
	err  string
}

type ipcReadyMsg struct {
	server *ipcServer
	err    error
}

type ipcClosedMsg struct{}

func newIPCServer() (*ipcServer, error) {
	listener, ep, err := ipc.Listen()
	if err != nil {
		return nil, err
	}

	s := &ipcServer{
		listener: listener,
		ep:       ep,
		messages: make(chan ipcMsg),
		done:     make(chan struct{}),
	}
	go s.serve()
	return s, nil
}

func (s *ipcServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.listener.Close()
		_ = ipc.Cleanup(s.ep)
	})
}

func (s *ipcServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.Close()
			}
			return
		}
		go s.handleConn(conn)
	}
}

// handleConn processes one command per connection, the tray's dial and
// send pattern.
func (s *ipcServer) handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}

	msg := ipcMsg{cmd: line, reply: make(chan ipcReply, 1)}
	select {
	case s.messages <- msg:
	case <-s.done:
		return
	}

	var reply ipcReply
	select {
	case reply = <-msg.reply:
	case <-time.After(time.Second):
		reply = ipcReply{ok: false, err: "timeout"}
	case <-s.done:
		return
	}

	switch {
	case !reply.ok:
		fmt.Fprintln(conn, "ERR "+reply.err)
	case reply.data != "":
		fmt.Fprintln(conn, reply.data)
	default:
		fmt.Fprintln(conn, "OK")
	}
}

// parseIPCCommand normalizes a raw command line.
func parseIPCCommand(raw string) (string, error) {
	cmd := strings.ToUpper(strings.TrimSpace(raw))
	if cmd == "" {
		return "", errors.New("empty command")
	}
	return cmd, nil
}
